package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"listacomparativa/internal/config"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/handler"
	"listacomparativa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubListaSvc struct {
	resp *dto.ImportResponse
	err  error
}

func (s *stubListaSvc) Importar(_ context.Context, _ uuid.UUID, _, _ string, _ io.Reader) (*dto.ImportResponse, error) {
	return s.resp, s.err
}
func (s *stubListaSvc) Listar(_ context.Context, _ string) ([]dto.ListaPrecioResponse, error) {
	return nil, nil
}
func (s *stubListaSvc) Obtener(_ context.Context, _ uuid.UUID) (*dto.ListaPrecioDetalleResponse, error) {
	return nil, errors.New("not found")
}
func (s *stubListaSvc) Eliminar(_ context.Context, _ uuid.UUID) error { return nil }

var _ service.ListaPrecioService = (*stubListaSvc)(nil)

func multipartLista(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("proveedor_id", uuid.NewString()))
	require.NoError(t, w.WriteField("nombre", "Lista Enero"))
	fw, err := w.CreateFormFile("archivo", "lista.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("xlsx"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestListasPrecios_ImportarDevuelveDetalleEn422(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubListaSvc{
		resp: &dto.ImportResponse{
			TotalFilas: 1,
			Errores:    1,
			DetalleErrores: []dto.ImportErrorRow{
				{Fila: 2, ErrorCode: "BARCODE_MISSING", Motivo: "codigo de barras vacio"},
			},
		},
		err: errors.New("ninguna fila pudo procesarse"),
	}
	h := handler.NewListasPreciosHandler(svc, &config.Config{UploadMaxMB: 10})

	r := gin.New()
	r.POST("/v1/listas-precios", h.Importar)

	body, contentType := multipartLista(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/listas-precios", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The per-row report travels with the error, not only on success.
	var respuesta struct {
		Success bool                 `json:"success"`
		Message string               `json:"message"`
		Detalle []dto.ImportErrorRow `json:"detalle"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respuesta))
	assert.False(t, respuesta.Success)
	assert.Contains(t, respuesta.Message, "ninguna fila")
	require.Len(t, respuesta.Detalle, 1)
	assert.Equal(t, "BARCODE_MISSING", respuesta.Detalle[0].ErrorCode)
}
