package service

import (
	"context"
	"errors"
	"fmt"

	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/moneda"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pricing rules applied to every cart read and to each purchase order.
var (
	// EnvioGratisDesde: shipping is free only when the subtotal strictly
	// exceeds this amount. A cart of exactly this value still pays shipping.
	EnvioGratisDesde = decimal.NewFromInt(5_000_000)
	CostoEnvio       = decimal.NewFromInt(50_000)
	TasaIVA          = decimal.NewFromFloat(0.19)
)

type CarritoService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	CambiarCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, usuarioID, itemID uuid.UUID) (*dto.CarritoResponse, error)
	Vaciar(ctx context.Context, usuarioID uuid.UUID) error
	// Confirmar turns the cart into purchase orders, one per supplier, and
	// enqueues their PDF+email dispatch. The cart empties atomically with
	// the order inserts.
	Confirmar(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfirmarCarritoResponse, error)
}

type carritoService struct {
	repo       repository.CarritoRepository
	listaRepo  repository.ListaPrecioRepository
	ordenRepo  repository.OrdenRepository
	dispatcher *worker.Dispatcher
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func NewCarritoService(
	repo repository.CarritoRepository,
	listaRepo repository.ListaPrecioRepository,
	ordenRepo repository.OrdenRepository,
	dispatcher *worker.Dispatcher,
) CarritoService {
	return &carritoService{
		repo:       repo,
		listaRepo:  listaRepo,
		ordenRepo:  ordenRepo,
		dispatcher: dispatcher,
	}
}

func (s *carritoService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error) {
	items, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(items), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id invalido: %w", err)
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id invalido: %w", err)
	}

	// One line per (producto, proveedor): adding the same offer twice is an
	// error, the quantity endpoint exists for that.
	if _, err := s.repo.FindByUsuarioProductoProveedor(ctx, usuarioID, productoID, proveedorID); err == nil {
		return nil, errors.New("el producto de ese proveedor ya esta en el carrito")
	}

	oferta, err := s.listaRepo.ItemPorProductoProveedor(ctx, productoID, proveedorID)
	if err != nil {
		return nil, errors.New("el proveedor no tiene ese producto en una lista activa")
	}

	tiempoEntrega := "3-5 dias"
	item := &model.CarritoItem{
		UsuarioID:      usuarioID,
		ProductoID:     productoID,
		ProveedorID:    proveedorID,
		Cantidad:       req.Cantidad,
		PrecioUnitario: oferta.Precio,
		DescuentoPct:   oferta.DescuentoPct,
		Disponible:     oferta.Disponible,
		TiempoEntrega:  tiempoEntrega,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, usuarioID)
}

func (s *carritoService) CambiarCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) (*dto.CarritoResponse, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil || item.UsuarioID != usuarioID {
		return nil, errors.New("item no encontrado en el carrito")
	}
	// Floor at 1: a decrement below 1 is a no-op, never a removal.
	if cantidad < 1 {
		return s.Obtener(ctx, usuarioID)
	}
	item.Cantidad = cantidad
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, usuarioID)
}

func (s *carritoService) QuitarItem(ctx context.Context, usuarioID, itemID uuid.UUID) (*dto.CarritoResponse, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err == nil && item.UsuarioID == usuarioID {
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return nil, err
		}
	}
	// Removing an absent item is idempotent.
	return s.Obtener(ctx, usuarioID)
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID uuid.UUID) error {
	return s.repo.DeleteByUsuario(ctx, usuarioID)
}

func (s *carritoService) Confirmar(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfirmarCarritoResponse, error) {
	items, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("el carrito esta vacio")
	}

	// One order per supplier, each priced with the same cart rules.
	porProveedor := make(map[uuid.UUID][]model.CarritoItem)
	var ordenProveedores []uuid.UUID
	for _, item := range items {
		if _, ok := porProveedor[item.ProveedorID]; !ok {
			ordenProveedores = append(ordenProveedores, item.ProveedorID)
		}
		porProveedor[item.ProveedorID] = append(porProveedor[item.ProveedorID], item)
	}

	var ordenes []*model.OrdenCompra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, proveedorID := range ordenProveedores {
			grupo := porProveedor[proveedorID]
			numero, err := s.ordenRepo.NextNumero(ctx, tx)
			if err != nil {
				return err
			}

			resumen := calcularResumen(grupo)
			orden := &model.OrdenCompra{
				Numero:         numero,
				UsuarioID:      usuarioID,
				ProveedorID:    proveedorID,
				Subtotal:       resumen.Subtotal,
				DescuentoTotal: resumen.DescuentoTotal,
				Envio:          resumen.Envio,
				Impuestos:      resumen.Impuestos,
				Total:          resumen.Total,
				Estado:         model.EstadoOrdenPendiente,
			}
			for _, item := range grupo {
				orden.Items = append(orden.Items, model.OrdenCompraItem{
					ProductoID:     item.ProductoID,
					Cantidad:       item.Cantidad,
					PrecioUnitario: item.PrecioUnitario,
					DescuentoPct:   item.DescuentoPct,
					Subtotal:       subtotalLinea(item),
				})
			}
			if err := s.ordenRepo.Create(ctx, tx, orden); err != nil {
				return err
			}
			// keep the preloaded proveedor for the response
			if grupo[0].Proveedor != nil {
				orden.Proveedor = grupo[0].Proveedor
			}
			ordenes = append(ordenes, orden)
		}

		if tx == nil {
			return s.repo.DeleteByUsuario(ctx, usuarioID)
		}
		return tx.WithContext(ctx).Delete(&model.CarritoItem{}, "usuario_id = ?", usuarioID).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async dispatch — a queue failure never rolls back the orders; the
	// retry cron picks up anything left pendiente.
	if s.dispatcher != nil {
		for _, orden := range ordenes {
			_ = s.dispatcher.EnqueueOrden(ctx, worker.OrdenJobPayload{OrdenID: orden.ID.String()})
		}
	}

	resp := &dto.ConfirmarCarritoResponse{Ordenes: []dto.OrdenCompraResponse{}}
	for _, orden := range ordenes {
		resp.Ordenes = append(resp.Ordenes, ordenToResponse(orden, false))
	}
	return resp, nil
}

// subtotalLinea nets the discount before extending by quantity:
// precio × (1 − desc/100) × cantidad.
func subtotalLinea(item model.CarritoItem) decimal.Decimal {
	return precioNeto(item.PrecioUnitario, item.DescuentoPct).
		Mul(decimal.NewFromInt(int64(item.Cantidad)))
}

// calcularResumen recomputes the aggregation from scratch. Unavailable items
// are included: availability disables the quantity controls client-side but
// never changes the money.
func calcularResumen(items []model.CarritoItem) dto.ResumenCarrito {
	subtotal := decimal.Zero
	descuentoTotal := decimal.Zero
	for _, item := range items {
		cantidad := decimal.NewFromInt(int64(item.Cantidad))
		bruto := item.PrecioUnitario.Mul(cantidad)
		subtotal = subtotal.Add(subtotalLinea(item))
		descuentoTotal = descuentoTotal.Add(bruto.Sub(subtotalLinea(item)))
	}

	envio := CostoEnvio
	if len(items) == 0 {
		envio = decimal.Zero
	} else if subtotal.GreaterThan(EnvioGratisDesde) {
		envio = decimal.Zero
	}

	impuestos := subtotal.Mul(TasaIVA).Round(2)
	total := subtotal.Add(envio).Add(impuestos)

	return dto.ResumenCarrito{
		Subtotal:       subtotal,
		DescuentoTotal: descuentoTotal,
		Envio:          envio,
		Impuestos:      impuestos,
		Total:          total,
		TotalTexto:     moneda.Formatear(total),
	}
}

func carritoToResponse(items []model.CarritoItem) *dto.CarritoResponse {
	resp := &dto.CarritoResponse{
		Items:   []dto.CarritoItemResponse{},
		Resumen: calcularResumen(items),
	}
	for _, item := range items {
		ir := dto.CarritoItemResponse{
			ID:             item.ID.String(),
			ProductoID:     item.ProductoID.String(),
			ProveedorID:    item.ProveedorID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			DescuentoPct:   item.DescuentoPct,
			Subtotal:       subtotalLinea(item),
			Disponible:     item.Disponible,
			TiempoEntrega:  item.TiempoEntrega,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
		}
		if item.Proveedor != nil {
			ir.Proveedor = item.Proveedor.RazonSocial
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
