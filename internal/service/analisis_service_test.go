package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalisisRepo holds the whole result set in memory; ReplaceAll swaps it
// wholesale like the real implementation does inside a transaction.
type stubAnalisisRepo struct {
	resultados []model.AnalisisResultado
}

func (r *stubAnalisisRepo) ReplaceAll(_ context.Context, resultados []model.AnalisisResultado) error {
	for i := range resultados {
		if resultados[i].ID == uuid.Nil {
			resultados[i].ID = uuid.New()
		}
	}
	r.resultados = resultados
	return nil
}

func (r *stubAnalisisRepo) List(_ context.Context) ([]model.AnalisisResultado, error) {
	return r.resultados, nil
}

func (r *stubAnalisisRepo) FindByProducto(_ context.Context, productoID uuid.UUID) (*model.AnalisisResultado, error) {
	for i := range r.resultados {
		if r.resultados[i].ProductoID == productoID {
			return &r.resultados[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAnalisisRepo) FindByBarcode(_ context.Context, barcode string) (*model.AnalisisResultado, error) {
	for i := range r.resultados {
		if r.resultados[i].Producto != nil && r.resultados[i].Producto.CodigoBarras == barcode {
			return &r.resultados[i], nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.AnalisisRepository = (*stubAnalisisRepo)(nil)

func oferta(productoID, proveedorID uuid.UUID, precio float64, descuento float64, disponible bool) model.ListaPrecioItem {
	return model.ListaPrecioItem{
		ProductoID:   productoID,
		ProveedorID:  proveedorID,
		Precio:       decimal.NewFromFloat(precio),
		DescuentoPct: decimal.NewFromFloat(descuento),
		Disponible:   disponible,
	}
}

func TestAnalisis_GenerarCalculaAgregados(t *testing.T) {
	analisisRepo := &stubAnalisisRepo{}
	listaRepo := &stubListaRepo{}
	productoID := uuid.New()
	mejorProveedor := uuid.New()
	listaRepo.ofertas = []model.ListaPrecioItem{
		oferta(productoID, uuid.New(), 100_000, 0, true),
		oferta(productoID, mejorProveedor, 100_000, 10, true), // neto 90.000
		oferta(productoID, uuid.New(), 120_000, 0, true),
	}

	svc := service.NewAnalisisService(analisisRepo, listaRepo)
	resp, err := svc.Generar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProductosAnalizados)

	require.Len(t, analisisRepo.resultados, 1)
	r := analisisRepo.resultados[0]
	assert.Equal(t, mejorProveedor, r.MejorProveedorID)
	assert.Equal(t, "90000", r.MejorPrecio.String())
	assert.Equal(t, "120000", r.PrecioMaximo.String())
	assert.Equal(t, "103333.33", r.PrecioPromedio.String())
	assert.Equal(t, "30000", r.AhorroMaximo.String())
	assert.Equal(t, "25", r.AhorroPct.String())
	assert.Equal(t, 3, r.ProveedoresComparados)
}

func TestAnalisis_GenerarUnaOfertaPorProveedor(t *testing.T) {
	analisisRepo := &stubAnalisisRepo{}
	listaRepo := &stubListaRepo{}
	productoID := uuid.New()
	proveedorA := uuid.New()
	proveedorB := uuid.New()

	vieja := oferta(productoID, proveedorA, 100_000, 0, true)
	vieja.CreatedAt = time.Now().Add(-48 * time.Hour)
	nueva := oferta(productoID, proveedorA, 300_000, 0, true)
	nueva.CreatedAt = time.Now()
	otra := oferta(productoID, proveedorB, 250_000, 0, true)
	otra.CreatedAt = time.Now()
	listaRepo.ofertas = []model.ListaPrecioItem{nueva, vieja, otra}

	svc := service.NewAnalisisService(analisisRepo, listaRepo)
	_, err := svc.Generar(context.Background())
	require.NoError(t, err)

	require.Len(t, analisisRepo.resultados, 1)
	r := analisisRepo.resultados[0]
	// Proveedor A's superseded 100.000 never enters the comparison: only its
	// newest offer counts, and the average divides by the offers summed.
	assert.Equal(t, proveedorB, r.MejorProveedorID)
	assert.Equal(t, "250000", r.MejorPrecio.String())
	assert.Equal(t, "300000", r.PrecioMaximo.String())
	assert.Equal(t, "275000", r.PrecioPromedio.String())
	assert.Equal(t, 2, r.ProveedoresComparados)
	assert.True(t, r.PrecioPromedio.LessThanOrEqual(r.PrecioMaximo))
}

func TestAnalisis_GenerarReemplazaResultadosViejos(t *testing.T) {
	analisisRepo := &stubAnalisisRepo{resultados: []model.AnalisisResultado{
		{ID: uuid.New(), ProductoID: uuid.New()},
	}}
	listaRepo := &stubListaRepo{} // no active offers left

	svc := service.NewAnalisisService(analisisRepo, listaRepo)
	resp, err := svc.Generar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProductosAnalizados)
	// Stale rows never survive a regeneration.
	assert.Empty(t, analisisRepo.resultados)
}

func TestAnalisis_DetalleMarcaMejorDisponible(t *testing.T) {
	productoID := uuid.New()
	barato := uuid.New()
	segundo := uuid.New()
	listaRepo := &stubListaRepo{ofertas: []model.ListaPrecioItem{
		oferta(productoID, barato, 80_000, 0, false), // cheapest but unavailable
		oferta(productoID, segundo, 90_000, 0, true),
		oferta(productoID, uuid.New(), 100_000, 0, true),
	}}

	svc := service.NewAnalisisService(&stubAnalisisRepo{}, listaRepo)
	detalle, err := svc.Detalle(context.Background(), productoID)
	require.NoError(t, err)
	require.Len(t, detalle.Proveedores, 3)

	// The unavailable offer is listed but can never win.
	assert.False(t, detalle.Proveedores[0].EsMejor)
	assert.True(t, detalle.Proveedores[1].EsMejor)
	assert.False(t, detalle.Proveedores[2].EsMejor)
}

func TestAnalisis_DetalleSinOfertas(t *testing.T) {
	svc := service.NewAnalisisService(&stubAnalisisRepo{}, &stubListaRepo{})
	_, err := svc.Detalle(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "listas activas")
}

func TestAnalisis_ListarFiltraPorNombre(t *testing.T) {
	analisisRepo := &stubAnalisisRepo{resultados: []model.AnalisisResultado{
		{ID: uuid.New(), ProductoID: uuid.New(), Producto: &model.Producto{Nombre: "Dell Inspiron 15", CodigoBarras: "111"}},
		{ID: uuid.New(), ProductoID: uuid.New(), Producto: &model.Producto{Nombre: "Mouse Logitech", CodigoBarras: "222"}},
	}}

	svc := service.NewAnalisisService(analisisRepo, &stubListaRepo{})

	resp, err := svc.Listar(context.Background(), "dell")
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Dell Inspiron 15", resp[0].Producto)

	todos, err := svc.Listar(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	ninguno, err := svc.Listar(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, ninguno)
}
