package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCarritoRepo is an in-memory CarritoRepository for testing.
type stubCarritoRepo struct {
	items map[uuid.UUID]*model.CarritoItem
	orden []uuid.UUID // insertion order
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{items: make(map[uuid.UUID]*model.CarritoItem)}
}

func (r *stubCarritoRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.CarritoItem, error) {
	var out []model.CarritoItem
	for _, id := range r.orden {
		item, ok := r.items[id]
		if ok && item.UsuarioID == usuarioID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubCarritoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CarritoItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

func (r *stubCarritoRepo) FindByUsuarioProductoProveedor(_ context.Context, usuarioID, productoID, proveedorID uuid.UUID) (*model.CarritoItem, error) {
	for _, item := range r.items {
		if item.UsuarioID == usuarioID && item.ProductoID == productoID && item.ProveedorID == proveedorID {
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCarritoRepo) Create(_ context.Context, item *model.CarritoItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	r.orden = append(r.orden, item.ID)
	return nil
}

func (r *stubCarritoRepo) Update(_ context.Context, item *model.CarritoItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubCarritoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubCarritoRepo) DeleteByUsuario(_ context.Context, usuarioID uuid.UUID) error {
	for id, item := range r.items {
		if item.UsuarioID == usuarioID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubCarritoRepo) DB() *gorm.DB { return nil }

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)

// stubListaRepo serves supplier offers and records imported listas.
type stubListaRepo struct {
	ofertas []model.ListaPrecioItem
	listas  []model.ListaPrecio
}

func (r *stubListaRepo) CreateConItems(_ context.Context, _ *gorm.DB, lista *model.ListaPrecio, items []model.ListaPrecioItem) error {
	if lista.ID == uuid.Nil {
		lista.ID = uuid.New()
	}
	for i := range items {
		items[i].ListaPrecioID = lista.ID
		items[i].ProveedorID = lista.ProveedorID
	}
	r.listas = append(r.listas, *lista)
	r.ofertas = append(r.ofertas, items...)
	return nil
}
func (r *stubListaRepo) MarcarReemplazadas(_ context.Context, _ *gorm.DB, proveedorID uuid.UUID) error {
	for i := range r.listas {
		if r.listas[i].ProveedorID == proveedorID && r.listas[i].Estado == "activa" {
			r.listas[i].Estado = "reemplazada"
		}
	}
	// Retired offers drop out of the active set, like the estado join does.
	var vivas []model.ListaPrecioItem
	for _, o := range r.ofertas {
		if r.estadoDeLista(o.ListaPrecioID) != "reemplazada" {
			vivas = append(vivas, o)
		}
	}
	r.ofertas = vivas
	return nil
}
func (r *stubListaRepo) estadoDeLista(id uuid.UUID) string {
	for i := range r.listas {
		if r.listas[i].ID == id {
			return r.listas[i].Estado
		}
	}
	return ""
}
func (r *stubListaRepo) DB() *gorm.DB { return nil }
func (r *stubListaRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.ListaPrecio, error) {
	return nil, errors.New("not found")
}
func (r *stubListaRepo) List(_ context.Context) ([]model.ListaPrecio, error) { return nil, nil }
func (r *stubListaRepo) Delete(_ context.Context, _ uuid.UUID) error         { return nil }
func (r *stubListaRepo) ItemsDeListasActivas(_ context.Context) ([]model.ListaPrecioItem, error) {
	return r.ofertas, nil
}
func (r *stubListaRepo) ItemsPorProducto(_ context.Context, productoID uuid.UUID) ([]model.ListaPrecioItem, error) {
	var out []model.ListaPrecioItem
	for _, o := range r.ofertas {
		if o.ProductoID == productoID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *stubListaRepo) ItemPorProductoProveedor(_ context.Context, productoID, proveedorID uuid.UUID) (*model.ListaPrecioItem, error) {
	for i := range r.ofertas {
		if r.ofertas[i].ProductoID == productoID && r.ofertas[i].ProveedorID == proveedorID {
			return &r.ofertas[i], nil
		}
	}
	return nil, errors.New("not found")
}
func (r *stubListaRepo) CountActivas(_ context.Context) (int64, error) { return 0, nil }

var _ repository.ListaPrecioRepository = (*stubListaRepo)(nil)

// stubOrdenRepo captures orders created on cart confirmation.
type stubOrdenRepo struct {
	ordenes map[uuid.UUID]*model.OrdenCompra
	seq     int64
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: make(map[uuid.UUID]*model.OrdenCompra), seq: 999}
}

func (r *stubOrdenRepo) Create(_ context.Context, _ *gorm.DB, orden *model.OrdenCompra) error {
	if orden.ID == uuid.Nil {
		orden.ID = uuid.New()
	}
	r.ordenes[orden.ID] = orden
	return nil
}

func (r *stubOrdenRepo) NextNumero(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrdenRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.OrdenCompra, error) {
	var out []model.OrdenCompra
	for _, o := range r.ordenes {
		if o.UsuarioID == usuarioID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) Update(_ context.Context, orden *model.OrdenCompra) error {
	r.ordenes[orden.ID] = orden
	return nil
}

func (r *stubOrdenRepo) CountPendientes(_ context.Context) (int64, error) { return 0, nil }

func (r *stubOrdenRepo) ListPendingRetries(_ context.Context, _ time.Time, _ int) ([]model.OrdenCompra, error) {
	return nil, nil
}

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func buildCarritoSvc() (service.CarritoService, *stubCarritoRepo, *stubListaRepo, *stubOrdenRepo) {
	carritoRepo := newStubCarritoRepo()
	listaRepo := &stubListaRepo{}
	ordenRepo := newStubOrdenRepo()
	svc := service.NewCarritoService(carritoRepo, listaRepo, ordenRepo, nil)
	return svc, carritoRepo, listaRepo, ordenRepo
}

func seedCartItem(repo *stubCarritoRepo, usuarioID uuid.UUID, precio float64, descuento float64, cantidad int) *model.CarritoItem {
	item := &model.CarritoItem{
		UsuarioID:      usuarioID,
		ProductoID:     uuid.New(),
		ProveedorID:    uuid.New(),
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromFloat(precio),
		DescuentoPct:   decimal.NewFromFloat(descuento),
		Disponible:     true,
	}
	_ = repo.Create(context.Background(), item)
	return item
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCarrito_ResumenEjemplo(t *testing.T) {
	// {2.580.000, 5%, ×2} + {420.000, 10%, ×4}
	svc, repo, _, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	seedCartItem(repo, usuarioID, 2_580_000, 5, 2)
	seedCartItem(repo, usuarioID, 420_000, 10, 4)

	resp, err := svc.Obtener(context.Background(), usuarioID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, "4902000", resp.Items[0].Subtotal.String())
	assert.Equal(t, "1512000", resp.Items[1].Subtotal.String())
	assert.Equal(t, "6414000", resp.Resumen.Subtotal.String())
	assert.Equal(t, "426000", resp.Resumen.DescuentoTotal.String())
	assert.Equal(t, "0", resp.Resumen.Envio.String()) // subtotal > 5.000.000
	assert.Equal(t, "1218660", resp.Resumen.Impuestos.String())
	assert.Equal(t, "7632660", resp.Resumen.Total.String())
}

func TestCarrito_EnvioLimiteExacto(t *testing.T) {
	// Exactly 5.000.000 still pays shipping — free only strictly above.
	svc, repo, _, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	seedCartItem(repo, usuarioID, 5_000_000, 0, 1)

	resp, err := svc.Obtener(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.Equal(t, "50000", resp.Resumen.Envio.String())
}

func TestCarrito_CarritoVacioSinEnvio(t *testing.T) {
	svc, _, _, _ := buildCarritoSvc()

	resp, err := svc.Obtener(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Resumen.Envio.IsZero())
	assert.True(t, resp.Resumen.Total.IsZero())
}

func TestCarrito_ItemNoDisponibleIncluidoEnTotales(t *testing.T) {
	svc, repo, _, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	item := seedCartItem(repo, usuarioID, 100_000, 0, 1)
	item.Disponible = false

	resp, err := svc.Obtener(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.False(t, resp.Items[0].Disponible)
	assert.Equal(t, "100000", resp.Resumen.Subtotal.String())
}

func TestCarrito_AgregarDuplicadoRechazado(t *testing.T) {
	svc, _, listaRepo, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	productoID := uuid.New()
	proveedorID := uuid.New()
	listaRepo.ofertas = []model.ListaPrecioItem{{
		ProductoID:  productoID,
		ProveedorID: proveedorID,
		Precio:      decimal.NewFromInt(250_000),
		Disponible:  true,
	}}

	req := dto.AgregarItemRequest{
		ProductoID:  productoID.String(),
		ProveedorID: proveedorID.String(),
		Cantidad:    1,
	}
	_, err := svc.AgregarItem(context.Background(), usuarioID, req)
	require.NoError(t, err)

	_, err = svc.AgregarItem(context.Background(), usuarioID, req)
	assert.ErrorContains(t, err, "ya esta en el carrito")
}

func TestCarrito_AgregarSinOfertaActiva(t *testing.T) {
	svc, _, _, _ := buildCarritoSvc()

	_, err := svc.AgregarItem(context.Background(), uuid.New(), dto.AgregarItemRequest{
		ProductoID:  uuid.New().String(),
		ProveedorID: uuid.New().String(),
		Cantidad:    1,
	})
	assert.ErrorContains(t, err, "lista activa")
}

func TestCarrito_CambiarCantidadPisoEnUno(t *testing.T) {
	svc, repo, _, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	item := seedCartItem(repo, usuarioID, 100_000, 0, 2)

	// Decrement below 1 leaves the line untouched.
	resp, err := svc.CambiarCantidad(context.Background(), usuarioID, item.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Items[0].Cantidad)

	resp, err = svc.CambiarCantidad(context.Background(), usuarioID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Items[0].Cantidad)
}

func TestCarrito_CambiarCantidadDeOtroUsuario(t *testing.T) {
	svc, repo, _, _ := buildCarritoSvc()
	item := seedCartItem(repo, uuid.New(), 100_000, 0, 1)

	_, err := svc.CambiarCantidad(context.Background(), uuid.New(), item.ID, 3)
	assert.ErrorContains(t, err, "no encontrado")
}

func TestCarrito_QuitarItemInexistenteEsIdempotente(t *testing.T) {
	svc, repo, _, _ := buildCarritoSvc()
	usuarioID := uuid.New()
	seedCartItem(repo, usuarioID, 100_000, 0, 1)

	resp, err := svc.QuitarItem(context.Background(), usuarioID, uuid.New())
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestCarrito_VaciarCarritoVacio(t *testing.T) {
	svc, _, _, _ := buildCarritoSvc()
	assert.NoError(t, svc.Vaciar(context.Background(), uuid.New()))
}

func TestCarrito_ConfirmarVacio(t *testing.T) {
	svc, _, _, _ := buildCarritoSvc()
	_, err := svc.Confirmar(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "vacio")
}

func TestCarrito_ConfirmarUnaOrdenPorProveedor(t *testing.T) {
	svc, repo, _, ordenRepo := buildCarritoSvc()
	usuarioID := uuid.New()
	proveedorA := uuid.New()
	proveedorB := uuid.New()

	itemA := seedCartItem(repo, usuarioID, 2_580_000, 5, 2)
	itemA.ProveedorID = proveedorA
	itemB := seedCartItem(repo, usuarioID, 420_000, 10, 4)
	itemB.ProveedorID = proveedorB
	itemC := seedCartItem(repo, usuarioID, 100_000, 0, 1)
	itemC.ProveedorID = proveedorA

	resp, err := svc.Confirmar(context.Background(), usuarioID)
	require.NoError(t, err)
	require.Len(t, resp.Ordenes, 2)
	assert.Len(t, ordenRepo.ordenes, 2)

	// Sequential numbers, one per supplier, cart emptied.
	assert.Equal(t, int64(1000), resp.Ordenes[0].Numero)
	assert.Equal(t, int64(1001), resp.Ordenes[1].Numero)
	assert.Equal(t, proveedorA.String(), resp.Ordenes[0].ProveedorID)
	assert.Equal(t, proveedorB.String(), resp.Ordenes[1].ProveedorID)
	assert.Equal(t, model.EstadoOrdenPendiente, resp.Ordenes[0].Estado)

	restante, _ := svc.Obtener(context.Background(), usuarioID)
	assert.Empty(t, restante.Items)

	// Supplier A groups its two lines: 4.902.000 + 100.000 = 5.002.000 > 5.000.000 → envío 0.
	assert.Equal(t, "5002000", resp.Ordenes[0].Subtotal.String())
	assert.Equal(t, "0", resp.Ordenes[0].Envio.String())
	// Supplier B alone stays below the threshold and pays shipping.
	assert.Equal(t, "1512000", resp.Ordenes[1].Subtotal.String())
	assert.Equal(t, "50000", resp.Ordenes[1].Envio.String())
}
