package handler

import (
	"net/http"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/middleware"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// usuarioID extracts the authenticated user from the JWT claims.
func usuarioID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CarritoHandler) Obtener(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el carrito"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusCreated, resp)
}

func (h *CarritoHandler) CambiarCantidad(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarCantidad(c.Request.Context(), uid, itemID, req.Cantidad)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *CarritoHandler) QuitarItem(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.QuitarItem(c.Request.Context(), uid, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al quitar el item"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	if err := h.svc.Vaciar(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	ok(c, http.StatusOK, gin.H{"items": []any{}, "vaciado": true})
}

// Confirmar godoc
// @Summary Convierte el carrito en ordenes de compra (una por proveedor)
// @Tags carrito
// @Produce json
// @Success 201 {object} dto.ConfirmarCarritoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/carrito/confirmar [post]
func (h *CarritoHandler) Confirmar(c *gin.Context) {
	uid, valid := usuarioID(c)
	if !valid {
		return
	}
	resp, err := h.svc.Confirmar(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusCreated, resp)
}
