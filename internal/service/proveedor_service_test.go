package service_test

import (
	"context"
	"errors"
	"testing"

	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProveedorRepo mirrors the real repo's visibility rule: List only
// returns active suppliers.
type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProveedorRepo) FindByNIT(_ context.Context, nit string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.NIT == nit {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return errors.New("not found")
	}
	p.Activo = false
	return nil
}

func (r *stubProveedorRepo) ReplaceContactos(_ context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error {
	p, ok := r.proveedores[proveedorID]
	if !ok {
		return errors.New("not found")
	}
	p.Contactos = contactos
	return nil
}

func (r *stubProveedorRepo) CountActivos(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.proveedores {
		if p.Activo {
			n++
		}
	}
	return n, nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

func TestProveedor_CrearYObtener(t *testing.T) {
	svc := service.NewProveedorService(newStubProveedorRepo())

	email := "ventas@tecno.com"
	resp, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "TecnoSuministros SAS",
		NIT:         "900123456-7",
		Email:       &email,
		Contactos: []dto.ContactoProveedorInput{
			{Nombre: "Ana Gomez", Email: &email},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Len(t, resp.Contactos, 1)

	obtenido, err := svc.Obtener(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "TecnoSuministros SAS", obtenido.RazonSocial)
}

func TestProveedor_NITDuplicado(t *testing.T) {
	svc := service.NewProveedorService(newStubProveedorRepo())

	_, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "TecnoSuministros SAS", NIT: "900123456-7",
	})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Otro Proveedor", NIT: "900123456-7",
	})
	assert.ErrorContains(t, err, "ya existe un proveedor con el NIT")
}

func TestProveedor_ActualizarNITOcupado(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)

	a, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor A", NIT: "900111111-1",
	})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor B", NIT: "900222222-2",
	})
	require.NoError(t, err)

	_, err = svc.Actualizar(context.Background(), uuid.MustParse(a.ID), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor A", NIT: "900222222-2",
	})
	assert.ErrorContains(t, err, "ya existe un proveedor con el NIT")
}

func TestProveedor_DesactivarLoOcultaDeTodo(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor Saliente", NIT: "900333333-3",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))

	// Gone from reads, second deactivation behaves like not-found.
	_, err = svc.Obtener(context.Background(), id)
	assert.ErrorContains(t, err, "no encontrado")

	listado, err := svc.Listar(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, listado)

	err = svc.Desactivar(context.Background(), id)
	assert.ErrorContains(t, err, "no encontrado")

	// The row itself survives — orders and history keep their references.
	assert.Contains(t, repo.proveedores, id)
}

func TestProveedor_ListarFiltraPorCiudad(t *testing.T) {
	repo := newStubProveedorRepo()
	svc := service.NewProveedorService(repo)

	bogota := "Bogota"
	cali := "Cali"
	_, err := svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor Uno", NIT: "900444444-4", Ciudad: &bogota,
	})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearProveedorRequest{
		RazonSocial: "Proveedor Dos", NIT: "900555555-5", Ciudad: &cali,
	})
	require.NoError(t, err)

	resultado, err := svc.Listar(context.Background(), "bogota")
	require.NoError(t, err)
	require.Len(t, resultado, 1)
	assert.Equal(t, "Proveedor Uno", resultado[0].RazonSocial)
}
