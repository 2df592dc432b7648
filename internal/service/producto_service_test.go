package service_test

import (
	"context"
	"testing"

	"listacomparativa/internal/model"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducto_ListarPorCategoriaYBusqueda(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo, &stubHistorialRepo{})

	require.NoError(t, repo.Create(context.Background(), nil, &model.Producto{
		CodigoBarras: "111", Nombre: "Dell Inspiron 15", Categoria: "Portatiles",
	}))
	require.NoError(t, repo.Create(context.Background(), nil, &model.Producto{
		CodigoBarras: "222", Nombre: "Mouse Logitech", Categoria: "Accesorios",
	}))

	portatiles, err := svc.Listar(context.Background(), "", "Portatiles")
	require.NoError(t, err)
	require.Len(t, portatiles, 1)
	assert.Equal(t, "Dell Inspiron 15", portatiles[0].Nombre)

	resultado, err := svc.Listar(context.Background(), "dell", "")
	require.NoError(t, err)
	require.Len(t, resultado, 1)

	nada, err := svc.Listar(context.Background(), "dell", "Accesorios")
	require.NoError(t, err)
	assert.Empty(t, nada)
}

func TestProducto_HistorialDeProductoInexistente(t *testing.T) {
	svc := service.NewProductoService(newStubProductoRepo(), &stubHistorialRepo{})

	_, err := svc.HistorialPrecios(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "producto no encontrado")
}

func TestProducto_HistorialOrdenDeCambios(t *testing.T) {
	repo := newStubProductoRepo()
	historialRepo := &stubHistorialRepo{}
	svc := service.NewProductoService(repo, historialRepo)

	p := &model.Producto{CodigoBarras: "111", Nombre: "Dell Inspiron 15"}
	require.NoError(t, repo.Create(context.Background(), nil, p))

	historialRepo.entradas = []model.HistorialPrecio{
		{ID: uuid.New(), ProductoID: p.ID, PrecioAntes: decimal.NewFromInt(2_580_000), PrecioDespues: decimal.NewFromInt(2_322_000), CambioPct: decimal.NewFromInt(-10)},
		{ID: uuid.New(), ProductoID: uuid.New()}, // another product, excluded
	}

	historial, err := svc.HistorialPrecios(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, "-10", historial[0].CambioPct.String())
}
