package handler

import (
	"net/http"

	"supplyease/internal/dto"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
)

// ChainsHandler serves the joined PR → SR → PO → Delivery view.
type ChainsHandler struct{ svc service.ChainService }

func NewChainsHandler(svc service.ChainService) *ChainsHandler {
	return &ChainsHandler{svc: svc}
}

// List godoc
// @Summary List process chains, newest PR first
// @Tags chains
// @Produce json
// @Param search query string false "Substring of a PR, SR or PO number"
// @Param status query string false "PR status, All for every status"
// @Success 200 {array} dto.ChainRowResponse
// @Router /v1/chains [get]
func (h *ChainsHandler) List(c *gin.Context) {
	var f dto.ListFilter
	_ = c.ShouldBindQuery(&f)
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChainsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Apply a status/date change across a chain
// @Description PR, SR and PO writes commit together or not at all.
// @Tags chains
// @Accept json
// @Produce json
// @Param id path int true "Purchase request id"
// @Param body body dto.CascadeUpdateRequest true "Changes"
// @Success 200 {object} dto.CascadeUpdateResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/chains/{id} [put]
func (h *ChainsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CascadeUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyUpdate(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChainsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
