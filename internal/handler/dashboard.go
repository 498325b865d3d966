package handler

import (
	"net/http"

	"supplyease/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary Spending total and status breakdowns
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
