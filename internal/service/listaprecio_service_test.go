package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type stubHistorialRepo struct {
	entradas []model.HistorialPrecio
}

func (r *stubHistorialRepo) Create(_ context.Context, _ *gorm.DB, h *model.HistorialPrecio) error {
	r.entradas = append(r.entradas, *h)
	return nil
}

func (r *stubHistorialRepo) ListPorProducto(_ context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error) {
	var out []model.HistorialPrecio
	for _, h := range r.entradas {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

// xlsxDePrueba builds an in-memory spreadsheet row by row, header included.
func xlsxDePrueba(t *testing.T, filas [][]interface{}) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	for i, fila := range filas {
		for j, v := range fila {
			celda, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", celda, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var encabezadoLista = []interface{}{
	"codigo_barras", "nombre", "marca", "categoria", "precio", "descuento_pct", "stock", "disponible",
}

func buildListaSvc() (service.ListaPrecioService, *stubListaRepo, *stubProductoRepo, *stubProveedorRepo, *stubHistorialRepo) {
	listaRepo := &stubListaRepo{}
	productoRepo := newStubProductoRepo()
	proveedorRepo := newStubProveedorRepo()
	historialRepo := &stubHistorialRepo{}
	svc := service.NewListaPrecioService(listaRepo, productoRepo, proveedorRepo, historialRepo)
	return svc, listaRepo, productoRepo, proveedorRepo, historialRepo
}

func seedProveedor(repo *stubProveedorRepo, razonSocial string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), RazonSocial: razonSocial, NIT: uuid.NewString(), Activo: true}
	repo.proveedores[p.ID] = p
	return p
}

func TestListaPrecio_ImportarCreaProductosYOfertas(t *testing.T) {
	svc, listaRepo, productoRepo, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	archivo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_580_000, 5, 10, "si"},
		{"7700000000002", "Mouse Inalambrico", "Logitech", "Accesorios", "$ 85.000,50", "", 40, "no"},
		{"", "Sin Codigo", "X", "Y", 1000},             // BARCODE_MISSING
		{"7700000000003", "", "X", "Y", 1000},          // NAME_MISSING
		{"7700000000004", "Precio Malo", "X", "Y", "abc"}, // PRICE_NOT_NUMBER
		{"7700000000005", "Precio Negativo", "X", "Y", -5}, // PRICE_NEGATIVE
	})

	resp, err := svc.Importar(context.Background(), proveedor.ID, "Lista Enero", "lista.xlsx", archivo)
	require.NoError(t, err)

	assert.Equal(t, 6, resp.TotalFilas)
	assert.Equal(t, 2, resp.Procesadas)
	assert.Equal(t, 4, resp.Errores)
	assert.Equal(t, 2, resp.Creadas)
	assert.Equal(t, 0, resp.Actualizadas)

	codigos := make([]string, 0, len(resp.DetalleErrores))
	for _, e := range resp.DetalleErrores {
		codigos = append(codigos, e.ErrorCode)
	}
	assert.Equal(t, []string{"BARCODE_MISSING", "NAME_MISSING", "PRICE_NOT_NUMBER", "PRICE_NEGATIVE"}, codigos)

	require.NotNil(t, resp.Lista)
	assert.Equal(t, "activa", resp.Lista.Estado)
	assert.Equal(t, 2, resp.Lista.TotalProductos)

	// Products were created from the rows.
	portatil, err := productoRepo.FindByBarcode(context.Background(), "7700000000001")
	require.NoError(t, err)
	assert.Equal(t, "Dell Inspiron 15", portatil.Nombre)
	assert.Equal(t, "Dell", portatil.Marca)

	// Offers captured with parsed price, discount, and availability.
	require.Len(t, listaRepo.ofertas, 2)
	assert.Equal(t, "2580000", listaRepo.ofertas[0].Precio.String())
	assert.Equal(t, "5", listaRepo.ofertas[0].DescuentoPct.String())
	assert.True(t, listaRepo.ofertas[0].Disponible)
	assert.Equal(t, "85000.5", listaRepo.ofertas[1].Precio.String()) // es-CO "$ 85.000,50"
	assert.False(t, listaRepo.ofertas[1].Disponible)
	assert.Equal(t, proveedor.ID, listaRepo.ofertas[0].ProveedorID)
}

func TestListaPrecio_ImportarNoRenombraProductos(t *testing.T) {
	svc, _, productoRepo, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	existente := &model.Producto{
		CodigoBarras: "7700000000001",
		Nombre:       "Dell Inspiron 15",
		Marca:        "Dell",
		Categoria:    "",
	}
	require.NoError(t, productoRepo.Create(context.Background(), nil, existente))

	archivo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Laptop Dell Barata", "OtraMarca", "Portatiles", 2_400_000},
	})

	resp, err := svc.Importar(context.Background(), proveedor.ID, "Lista Febrero", "lista.xlsx", archivo)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Creadas)
	assert.Equal(t, 1, resp.Actualizadas)

	// Name and non-blank brand stay; only the blank category is filled.
	actualizado, _ := productoRepo.FindByBarcode(context.Background(), "7700000000001")
	assert.Equal(t, "Dell Inspiron 15", actualizado.Nombre)
	assert.Equal(t, "Dell", actualizado.Marca)
	assert.Equal(t, "Portatiles", actualizado.Categoria)
}

func TestListaPrecio_ImportarRegistraCambioDePrecio(t *testing.T) {
	svc, listaRepo, productoRepo, proveedorRepo, historialRepo := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	producto := &model.Producto{CodigoBarras: "7700000000001", Nombre: "Dell Inspiron 15"}
	require.NoError(t, productoRepo.Create(context.Background(), nil, producto))
	listaRepo.ofertas = []model.ListaPrecioItem{{
		ProductoID:  producto.ID,
		ProveedorID: proveedor.ID,
		Precio:      decimal.NewFromInt(2_580_000),
	}}

	archivo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_322_000},
	})

	_, err := svc.Importar(context.Background(), proveedor.ID, "Lista Marzo", "lista.xlsx", archivo)
	require.NoError(t, err)

	require.Len(t, historialRepo.entradas, 1)
	h := historialRepo.entradas[0]
	assert.Equal(t, "2580000", h.PrecioAntes.String())
	assert.Equal(t, "2322000", h.PrecioDespues.String())
	assert.Equal(t, "-10", h.CambioPct.String())
	assert.Equal(t, "importacion_lista", h.Motivo)
}

func TestListaPrecio_ImportarRechazaBarcodeRepetido(t *testing.T) {
	svc, listaRepo, _, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	archivo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_580_000},
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_100_000},
	})

	resp, err := svc.Importar(context.Background(), proveedor.ID, "Lista Mayo", "lista.xlsx", archivo)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Procesadas)
	assert.Equal(t, 1, resp.Errores)
	require.Len(t, resp.DetalleErrores, 1)
	assert.Equal(t, "BARCODE_DUPLICATE", resp.DetalleErrores[0].ErrorCode)
	assert.Equal(t, 3, resp.DetalleErrores[0].Fila)

	// The first occurrence wins; the repeated row never becomes an offer.
	require.Len(t, listaRepo.ofertas, 1)
	assert.Equal(t, "2580000", listaRepo.ofertas[0].Precio.String())
}

func TestListaPrecio_ReimportarReemplazaListaAnterior(t *testing.T) {
	svc, listaRepo, _, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	primero := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_580_000},
	})
	_, err := svc.Importar(context.Background(), proveedor.ID, "Lista Enero", "enero.xlsx", primero)
	require.NoError(t, err)

	segundo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"7700000000001", "Dell Inspiron 15", "Dell", "Portatiles", 2_322_000},
	})
	_, err = svc.Importar(context.Background(), proveedor.ID, "Lista Febrero", "febrero.xlsx", segundo)
	require.NoError(t, err)

	// The January lista is retired; only February's offer stays active, so
	// the supplier can never compete against its own superseded price.
	require.Len(t, listaRepo.listas, 2)
	assert.Equal(t, "reemplazada", listaRepo.listas[0].Estado)
	assert.Equal(t, "activa", listaRepo.listas[1].Estado)

	activas, err := listaRepo.ItemsDeListasActivas(context.Background())
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, "2322000", activas[0].Precio.String())
}

func TestListaPrecio_ImportarSinFilasValidas(t *testing.T) {
	svc, _, _, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	archivo := xlsxDePrueba(t, [][]interface{}{
		encabezadoLista,
		{"", "Sin Codigo", "X", "Y", 1000},
	})

	resp, err := svc.Importar(context.Background(), proveedor.ID, "Lista Abril", "lista.xlsx", archivo)
	assert.ErrorContains(t, err, "ninguna fila pudo procesarse")
	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.Errores)
}

func TestListaPrecio_ImportarProveedorInactivo(t *testing.T) {
	svc, _, _, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "Proveedor Saliente")
	proveedor.Activo = false

	archivo := xlsxDePrueba(t, [][]interface{}{encabezadoLista})
	_, err := svc.Importar(context.Background(), proveedor.ID, "Lista", "lista.xlsx", archivo)
	assert.ErrorContains(t, err, "proveedor no encontrado")
}

func TestListaPrecio_ImportarArchivoCorrupto(t *testing.T) {
	svc, _, _, proveedorRepo, _ := buildListaSvc()
	proveedor := seedProveedor(proveedorRepo, "TecnoSuministros SAS")

	_, err := svc.Importar(context.Background(), proveedor.ID, "Lista", "lista.xlsx",
		errReader{})
	assert.ErrorContains(t, err, "no es un .xlsx valido")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }
