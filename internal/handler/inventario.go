package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/config"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct {
	svc service.InventarioService
	cfg *config.Config
}

func NewInventarioHandler(svc service.InventarioService, cfg *config.Config) *InventarioHandler {
	return &InventarioHandler{svc: svc, cfg: cfg}
}

func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("buscar"), c.Query("estado"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar el inventario"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) Importar(c *gin.Context) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo"))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, apierror.New("Solo se aceptan archivos .xlsx"))
		return
	}
	if fileHeader.Size > int64(h.cfg.UploadMaxMB)<<20 {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("El archivo supera el tamano maximo permitido"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()

	resp, err := h.svc.Importar(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusCreated, resp)
}

func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar alertas"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) Movimientos(c *gin.Context) {
	limite := 100
	if v := c.Query("limite"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limite = n
		}
	}
	resp, err := h.svc.Movimientos(c.Request.Context(), limite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) Sugerencias(c *gin.Context) {
	soloPendientes := c.DefaultQuery("pendientes", "true") != "false"
	resp, err := h.svc.Sugerencias(c.Request.Context(), soloPendientes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar sugerencias"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) GenerarSugerencias(c *gin.Context) {
	resp, err := h.svc.GenerarSugerencias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar sugerencias"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *InventarioHandler) ProcesarSugerencia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ProcesarSugerencia(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}
