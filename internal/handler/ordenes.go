package handler

import (
	"net/http"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

func (h *OrdenesHandler) Listar(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ordenes"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), uid, ordenID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}

// DescargarPDF streams the generated purchase-order document.
func (h *OrdenesHandler) DescargarPDF(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.RutaPDF(c.Request.Context(), uid, ordenID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

func (h *OrdenesHandler) Reintentar(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Reintentar(c.Request.Context(), uid, ordenID)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}
