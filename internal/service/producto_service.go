package service

import (
	"context"
	"errors"
	"time"

	"listacomparativa/internal/buscador"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Listar(ctx context.Context, busqueda, categoria string) ([]dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	HistorialPrecios(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialPrecioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	historialRepo repository.HistorialPrecioRepository
}

func NewProductoService(repo repository.ProductoRepository, historialRepo repository.HistorialPrecioRepository) ProductoService {
	return &productoService{repo: repo, historialRepo: historialRepo}
}

func (s *productoService) Listar(ctx context.Context, busqueda, categoria string) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, categoria)
	if err != nil {
		return nil, err
	}
	productos = buscador.Filtrar(productos, busqueda, func(p model.Producto) []string {
		return []string{p.Nombre, p.CodigoBarras, p.Codigo, p.Marca}
	})
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) HistorialPrecios(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialPrecioResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, errors.New("producto no encontrado")
	}
	historial, err := s.historialRepo.ListPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialPrecioResponse, len(historial))
	for i, h := range historial {
		resp[i] = dto.HistorialPrecioResponse{
			ID:            h.ID.String(),
			PrecioAntes:   h.PrecioAntes,
			PrecioDespues: h.PrecioDespues,
			CambioPct:     h.CambioPct,
			Motivo:        h.Motivo,
			Fecha:         h.CreatedAt.Format(time.RFC3339),
		}
		if h.Proveedor != nil {
			resp[i].Proveedor = h.Proveedor.RazonSocial
		}
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID.String(),
		Codigo:       p.Codigo,
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Marca:        p.Marca,
		Categoria:    p.Categoria,
	}
}
