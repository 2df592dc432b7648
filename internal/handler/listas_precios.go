package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"listacomparativa/internal/apierror"
	"listacomparativa/internal/config"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListasPreciosHandler struct {
	svc service.ListaPrecioService
	cfg *config.Config
}

func NewListasPreciosHandler(svc service.ListaPrecioService, cfg *config.Config) *ListasPreciosHandler {
	return &ListasPreciosHandler{svc: svc, cfg: cfg}
}

// Importar godoc
// @Summary Carga de lista de precios (multipart .xlsx)
// @Tags listas-precios
// @Accept multipart/form-data
// @Produce json
// @Param proveedor_id formData string true "ID del proveedor"
// @Param nombre formData string true "Nombre de la lista"
// @Param archivo formData file true "Archivo .xlsx"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/listas-precios [post]
func (h *ListasPreciosHandler) Importar(c *gin.Context) {
	proveedorID, err := uuid.Parse(c.PostForm("proveedor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("proveedor_id invalido"))
		return
	}
	nombre := strings.TrimSpace(c.PostForm("nombre"))
	if nombre == "" {
		c.JSON(http.StatusBadRequest, apierror.New("El nombre de la lista es obligatorio"))
		return
	}

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

	resp, err := h.svc.Importar(c.Request.Context(), proveedorID, nombre, fileHeader.Filename, f)
	if err != nil {
		// A fully failed parse still reports the per-row detail when present.
		if resp != nil {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewConDetalle(err.Error(), resp.DetalleErrores))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusCreated, resp)
}

func (h *ListasPreciosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("buscar"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar listas de precios"))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}

func (h *ListasPreciosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id.String(), "eliminada": true})
}
