package handler

import (
	"net/http"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalisisHandler struct{ svc service.AnalisisService }

func NewAnalisisHandler(svc service.AnalisisService) *AnalisisHandler {
	return &AnalisisHandler{svc: svc}
}

func (h *AnalisisHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("buscar"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar el analisis"))
		return
	}
	ok(c, http.StatusOK, resp)
}

// Generar godoc
// @Summary Regenera el analisis comparativo completo
// @Tags analisis
// @Produce json
// @Success 200 {object} dto.GenerarAnalisisResponse
// @Router /v1/analisis/generar [post]
func (h *AnalisisHandler) Generar(c *gin.Context) {
	resp, err := h.svc.Generar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el analisis"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *AnalisisHandler) Detalle(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
		return
	}
	resp, err := h.svc.Detalle(c.Request.Context(), productoID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}
