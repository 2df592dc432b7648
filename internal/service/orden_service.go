package service

import (
	"context"
	"errors"
	"time"

	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/worker"

	"github.com/google/uuid"
)

type OrdenService interface {
	Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.OrdenCompraResponse, error)
	Obtener(ctx context.Context, usuarioID, ordenID uuid.UUID) (*dto.OrdenCompraResponse, error)
	// RutaPDF returns the stored PDF path for download, or an error while
	// the document is still being generated.
	RutaPDF(ctx context.Context, usuarioID, ordenID uuid.UUID) (string, error)
	// Reintentar requeues a failed order for PDF+email dispatch.
	Reintentar(ctx context.Context, usuarioID, ordenID uuid.UUID) (*dto.OrdenCompraResponse, error)
}

type ordenService struct {
	repo       repository.OrdenRepository
	dispatcher *worker.Dispatcher
}

func NewOrdenService(repo repository.OrdenRepository, dispatcher *worker.Dispatcher) OrdenService {
	return &ordenService{repo: repo, dispatcher: dispatcher}
}

func (s *ordenService) Listar(ctx context.Context, usuarioID uuid.UUID) ([]dto.OrdenCompraResponse, error) {
	ordenes, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrdenCompraResponse, len(ordenes))
	for i := range ordenes {
		resp[i] = ordenToResponse(&ordenes[i], false)
	}
	return resp, nil
}

func (s *ordenService) Obtener(ctx context.Context, usuarioID, ordenID uuid.UUID) (*dto.OrdenCompraResponse, error) {
	orden, err := s.findDeUsuario(ctx, usuarioID, ordenID)
	if err != nil {
		return nil, err
	}
	resp := ordenToResponse(orden, true)
	return &resp, nil
}

func (s *ordenService) RutaPDF(ctx context.Context, usuarioID, ordenID uuid.UUID) (string, error) {
	orden, err := s.findDeUsuario(ctx, usuarioID, ordenID)
	if err != nil {
		return "", err
	}
	if orden.PDFPath == nil || *orden.PDFPath == "" {
		return "", errors.New("el PDF de la orden aun no fue generado")
	}
	return *orden.PDFPath, nil
}

func (s *ordenService) Reintentar(ctx context.Context, usuarioID, ordenID uuid.UUID) (*dto.OrdenCompraResponse, error) {
	orden, err := s.findDeUsuario(ctx, usuarioID, ordenID)
	if err != nil {
		return nil, err
	}
	if orden.Estado == model.EstadoOrdenEnviada {
		return nil, errors.New("la orden ya fue enviada")
	}

	orden.Estado = model.EstadoOrdenPendiente
	orden.RetryCount = 0
	orden.NextRetryAt = nil
	orden.LastError = nil
	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueOrden(ctx, worker.OrdenJobPayload{OrdenID: orden.ID.String()}); err != nil {
			return nil, err
		}
	}
	resp := ordenToResponse(orden, false)
	return &resp, nil
}

func (s *ordenService) findDeUsuario(ctx context.Context, usuarioID, ordenID uuid.UUID) (*model.OrdenCompra, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil || orden.UsuarioID != usuarioID {
		return nil, errors.New("orden no encontrada")
	}
	return orden, nil
}

func ordenToResponse(o *model.OrdenCompra, conItems bool) dto.OrdenCompraResponse {
	resp := dto.OrdenCompraResponse{
		ID:             o.ID.String(),
		Numero:         o.Numero,
		ProveedorID:    o.ProveedorID.String(),
		Subtotal:       o.Subtotal,
		DescuentoTotal: o.DescuentoTotal,
		Envio:          o.Envio,
		Impuestos:      o.Impuestos,
		Total:          o.Total,
		Estado:         o.Estado,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	if o.Proveedor != nil {
		resp.Proveedor = o.Proveedor.RazonSocial
	}
	if conItems {
		for _, item := range o.Items {
			ir := dto.OrdenCompraItemResponse{
				ProductoID:     item.ProductoID.String(),
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				DescuentoPct:   item.DescuentoPct,
				Subtotal:       item.Subtotal,
			}
			if item.Producto != nil {
				ir.Producto = item.Producto.Nombre
			}
			resp.Items = append(resp.Items, ir)
		}
	}
	return resp
}
