package handler

import (
	"net/http"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaPreciosHandler serves the public best-price check endpoint.
// No authentication required — no side effects beyond the cache fill.
type ConsultaPreciosHandler struct{ svc service.DashboardService }

func NewConsultaPreciosHandler(svc service.DashboardService) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc}
}

// GetPrecioPorBarcode godoc
// @Summary Consulta del mejor precio por codigo de barras (sin autenticacion)
// @Tags precio
// @Produce json
// @Param barcode path string true "Codigo de barras"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{barcode} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorBarcode(c *gin.Context) {
	resp, err := h.svc.ConsultaPrecio(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}
