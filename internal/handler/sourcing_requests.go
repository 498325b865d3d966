package handler

import (
	"net/http"

	"supplyease/internal/dto"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
)

type SourcingRequestsHandler struct{ svc service.SourcingRequestService }

func NewSourcingRequestsHandler(svc service.SourcingRequestService) *SourcingRequestsHandler {
	return &SourcingRequestsHandler{svc: svc}
}

// Create godoc
// @Summary Create a sourcing request
// @Tags sourcing-requests
// @Accept json
// @Produce json
// @Param body body dto.CreateSourcingRequestRequest true "Sourcing request"
// @Success 201 {object} dto.SourcingRequestResponse
// @Router /v1/sourcing-requests [post]
func (h *SourcingRequestsHandler) Create(c *gin.Context) {
	var req dto.CreateSourcingRequestRequest
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

func (h *SourcingRequestsHandler) List(c *gin.Context) {
	var f dto.ListFilter
	_ = c.ShouldBindQuery(&f)
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SourcingRequestsHandler) Get(c *gin.Context) {
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

func (h *SourcingRequestsHandler) GetByNumber(c *gin.Context) {
	resp, err := h.svc.GetByNumber(c.Request.Context(), c.Param("sr_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
