package handler

import (
	"net/http"

	"supplyease/internal/dto"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
)

type DeliveriesHandler struct{ svc service.DeliveryService }

func NewDeliveriesHandler(svc service.DeliveryService) *DeliveriesHandler {
	return &DeliveriesHandler{svc: svc}
}

// List godoc
// @Summary List delivery records
// @Tags deliveries
// @Produce json
// @Param search query string false "PO number or material code"
// @Param status query string false "Delivery status, All for every status"
// @Success 200 {array} dto.DeliveryStatusResponse
// @Router /v1/deliveries [get]
func (h *DeliveriesHandler) List(c *gin.Context) {
	var f dto.ListFilter
	_ = c.ShouldBindQuery(&f)
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeliveriesHandler) Get(c *gin.Context) {
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

func (h *DeliveriesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDeliveryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeliveriesHandler) Delete(c *gin.Context) {
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
