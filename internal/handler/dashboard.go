package handler

import (
	"net/http"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Resumen godoc
// @Summary Contadores del tablero principal
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ResumenDashboard
// @Router /v1/dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		// All-of join: one failed counter fails the whole summary.
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	ok(c, http.StatusOK, resp)
}
