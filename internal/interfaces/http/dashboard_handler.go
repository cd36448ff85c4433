package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/analytics"
)

// DashboardHandler expone las métricas agregadas del panel (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Métricas del panel: totales, ingresos y tendencia diaria
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
