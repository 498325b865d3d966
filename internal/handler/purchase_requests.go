package handler

import (
	"fmt"
	"net/http"

	"supplyease/internal/apierror"
	"supplyease/internal/dto"
	"supplyease/internal/importer"
	"supplyease/internal/middleware"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PurchaseRequestsHandler struct{ svc service.PurchaseRequestService }

func NewPurchaseRequestsHandler(svc service.PurchaseRequestService) *PurchaseRequestsHandler {
	return &PurchaseRequestsHandler{svc: svc}
}

// Create godoc
// @Summary Create a purchase request
// @Description Empty or malformed quantity and budget are stored as 0.
// @Tags purchase-requests
// @Accept json
// @Produce json
// @Param body body dto.CreatePurchaseRequestRequest true "Purchase request"
// @Success 201 {object} dto.PurchaseRequestResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/purchase-requests [post]
func (h *PurchaseRequestsHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Import godoc
// @Summary Bulk-create purchase requests from a spreadsheet
// @Description Columns Item, MaterialCode, Qty, Budget. Malformed rows are skipped and counted.
// @Tags purchase-requests
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx or csv file"
// @Success 200 {object} dto.ImportResult
// @Failure 409 {object} dto.ImportResult "stopped early; counts cover the rows before the failure"
// @Router /v1/purchase-requests/import [post]
func (h *PurchaseRequestsHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("upload a file in the \"file\" field"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("unable to read upload"))
		return
	}
	defer f.Close()

	rows, err := importer.Parse(fh.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	res, err := h.svc.Import(c.Request.Context(), rows)
	if err != nil {
		if res == nil {
			writeError(c, err)
			return
		}
		// Rows before the failure are committed; the counts must reach the client.
		status, detail, ok := mapError(c, err)
		if !ok {
			log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).
				Int("created", res.Created).Msg("purchase request import stopped")
			status, detail = http.StatusInternalServerError, apierror.MsgInternal
		}
		res.Detail = detail
		c.JSON(status, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ImportTemplate serves an empty workbook with the expected header row.
func (h *PurchaseRequestsHandler) ImportTemplate(c *gin.Context) {
	f, err := importer.Template()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "purchase_requests_template.xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *PurchaseRequestsHandler) List(c *gin.Context) {
	var f dto.ListFilter
	_ = c.ShouldBindQuery(&f)
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseRequestsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseRequestsHandler) GetByNumber(c *gin.Context) {
	resp, err := h.svc.GetByNumber(c.Request.Context(), c.Param("pr_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
