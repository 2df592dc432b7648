package service

import (
	"context"
	"errors"

	"listacomparativa/internal/buscador"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, busqueda string) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if existente, err := s.repo.FindByNIT(ctx, req.NIT); err == nil && existente.Activo {
		return nil, errors.New("ya existe un proveedor con el NIT " + req.NIT)
	}

	p := &model.Proveedor{
		RazonSocial:   req.RazonSocial,
		NIT:           req.NIT,
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		Ciudad:        req.Ciudad,
		CondicionPago: req.CondicionPago,
		Activo:        true,
	}
	for _, c := range req.Contactos {
		p.Contactos = append(p.Contactos, model.ContactoProveedor{
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil || !p.Activo {
		return nil, errors.New("proveedor no encontrado")
	}
	resp := proveedorToResponse(p)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context, busqueda string) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	proveedores = buscador.Filtrar(proveedores, busqueda, func(p model.Proveedor) []string {
		campos := []string{p.RazonSocial, p.NIT}
		if p.Ciudad != nil {
			campos = append(campos, *p.Ciudad)
		}
		return campos
	})
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i := range proveedores {
		resp[i] = proveedorToResponse(&proveedores[i])
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil || !p.Activo {
		return nil, errors.New("proveedor no encontrado")
	}

	if req.NIT != p.NIT {
		if otro, err := s.repo.FindByNIT(ctx, req.NIT); err == nil && otro.ID != p.ID {
			return nil, errors.New("ya existe un proveedor con el NIT " + req.NIT)
		}
	}

	p.RazonSocial = req.RazonSocial
	p.NIT = req.NIT
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion
	p.Ciudad = req.Ciudad
	p.CondicionPago = req.CondicionPago
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	contactos := make([]model.ContactoProveedor, 0, len(req.Contactos))
	for _, c := range req.Contactos {
		contactos = append(contactos, model.ContactoProveedor{
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	if err := s.repo.ReplaceContactos(ctx, p.ID, contactos); err != nil {
		return nil, err
	}

	return s.Obtener(ctx, p.ID)
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil || !p.Activo {
		return errors.New("proveedor no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) dto.ProveedorResponse {
	resp := dto.ProveedorResponse{
		ID:            p.ID.String(),
		RazonSocial:   p.RazonSocial,
		NIT:           p.NIT,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		Ciudad:        p.Ciudad,
		CondicionPago: p.CondicionPago,
		Activo:        p.Activo,
		Contactos:     []dto.ContactoProveedorResponse{},
	}
	for _, c := range p.Contactos {
		resp.Contactos = append(resp.Contactos, dto.ContactoProveedorResponse{
			ID:       c.ID.String(),
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	return resp
}
