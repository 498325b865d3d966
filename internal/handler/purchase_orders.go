package handler

import (
	"net/http"

	"supplyease/internal/dto"
	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseOrdersHandler struct{ svc service.PurchaseOrderService }

func NewPurchaseOrdersHandler(svc service.PurchaseOrderService) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc}
}

// Create godoc
// @Summary Create a purchase order
// @Description Also opens its delivery record in state Processing.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param body body dto.CreatePurchaseOrderRequest true "Purchase order"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Router /v1/purchase-orders [post]
func (h *PurchaseOrdersHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
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

func (h *PurchaseOrdersHandler) List(c *gin.Context) {
	var f dto.ListFilter
	_ = c.ShouldBindQuery(&f)
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Get(c *gin.Context) {
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
