package service

import (
	"context"
	"errors"
	"time"

	"listacomparativa/internal/buscador"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/moneda"
	"listacomparativa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AnalisisService interface {
	Listar(ctx context.Context, busqueda string) ([]dto.AnalisisResponse, error)
	// Generar recomputes the whole comparison from the active price lists.
	Generar(ctx context.Context) (*dto.GenerarAnalisisResponse, error)
	// Detalle lists every supplier's current offer for one product, best
	// offer flagged. Reads live price-list data, not the stored results.
	Detalle(ctx context.Context, productoID uuid.UUID) (*dto.AnalisisDetalleResponse, error)
}

type analisisService struct {
	repo      repository.AnalisisRepository
	listaRepo repository.ListaPrecioRepository
}

func NewAnalisisService(repo repository.AnalisisRepository, listaRepo repository.ListaPrecioRepository) AnalisisService {
	return &analisisService{repo: repo, listaRepo: listaRepo}
}

func (s *analisisService) Listar(ctx context.Context, busqueda string) ([]dto.AnalisisResponse, error) {
	resultados, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resultados = buscador.Filtrar(resultados, busqueda, func(r model.AnalisisResultado) []string {
		var campos []string
		if r.Producto != nil {
			campos = append(campos, r.Producto.Nombre, r.Producto.CodigoBarras, r.Producto.Categoria)
		}
		if r.MejorProveedor != nil {
			campos = append(campos, r.MejorProveedor.RazonSocial)
		}
		return campos
	})
	resp := make([]dto.AnalisisResponse, len(resultados))
	for i := range resultados {
		resp[i] = analisisToResponse(&resultados[i])
	}
	return resp, nil
}

func (s *analisisService) Generar(ctx context.Context) (*dto.GenerarAnalisisResponse, error) {
	items, err := s.listaRepo.ItemsDeListasActivas(ctx)
	if err != nil {
		return nil, err
	}

	// A proveedor can show up with more than one offer for a product when an
	// older lista is still activa. Only its newest offer enters the
	// comparison, so a superseded price can never win nor skew the average.
	type ofertaClave struct{ producto, proveedor uuid.UUID }
	vigentes := make(map[ofertaClave]model.ListaPrecioItem, len(items))
	for _, item := range items {
		k := ofertaClave{item.ProductoID, item.ProveedorID}
		if prev, ok := vigentes[k]; ok && item.CreatedAt.Before(prev.CreatedAt) {
			continue
		}
		vigentes[k] = item
	}

	// Group offers per product, keep whichever supplier nets cheapest.
	type acumulado struct {
		mejorProveedorID uuid.UUID
		mejor            decimal.Decimal
		maximo           decimal.Decimal
		suma             decimal.Decimal
		ofertas          int64
	}
	porProducto := make(map[uuid.UUID]*acumulado)

	for _, item := range vigentes {
		neto := precioNeto(item.Precio, item.DescuentoPct)
		acc, ok := porProducto[item.ProductoID]
		if !ok {
			porProducto[item.ProductoID] = &acumulado{
				mejorProveedorID: item.ProveedorID,
				mejor:            neto,
				maximo:           neto,
				suma:             neto,
				ofertas:          1,
			}
			continue
		}
		acc.suma = acc.suma.Add(neto)
		acc.ofertas++
		if neto.LessThan(acc.mejor) {
			acc.mejor = neto
			acc.mejorProveedorID = item.ProveedorID
		}
		if neto.GreaterThan(acc.maximo) {
			acc.maximo = neto
		}
	}

	ahora := time.Now()
	resultados := make([]model.AnalisisResultado, 0, len(porProducto))
	for productoID, acc := range porProducto {
		// One offer per proveedor after the reduction above, so the divisor
		// counts exactly the prices summed.
		n := acc.ofertas
		promedio := acc.suma.Div(decimal.NewFromInt(n)).Round(2)
		ahorro := acc.maximo.Sub(acc.mejor)
		ahorroPct := decimal.Zero
		if !acc.maximo.IsZero() {
			ahorroPct = ahorro.Div(acc.maximo).Mul(decimal.NewFromInt(100)).Round(2)
		}
		resultados = append(resultados, model.AnalisisResultado{
			ProductoID:            productoID,
			MejorProveedorID:      acc.mejorProveedorID,
			MejorPrecio:           acc.mejor,
			PrecioPromedio:        promedio,
			PrecioMaximo:          acc.maximo,
			AhorroMaximo:          ahorro,
			AhorroPct:             ahorroPct,
			ProveedoresComparados: int(n),
			GeneradoEn:            ahora,
		})
	}

	if err := s.repo.ReplaceAll(ctx, resultados); err != nil {
		return nil, err
	}
	return &dto.GenerarAnalisisResponse{
		ProductosAnalizados: len(resultados),
		GeneradoEn:          ahora.Format(time.RFC3339),
	}, nil
}

func (s *analisisService) Detalle(ctx context.Context, productoID uuid.UUID) (*dto.AnalisisDetalleResponse, error) {
	items, err := s.listaRepo.ItemsPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("el producto no tiene ofertas en listas activas")
	}

	mejor := decimal.Decimal{}
	mejorIdx := -1
	for i, item := range items {
		if !item.Disponible {
			continue
		}
		neto := precioNeto(item.Precio, item.DescuentoPct)
		if mejorIdx == -1 || neto.LessThan(mejor) {
			mejor = neto
			mejorIdx = i
		}
	}

	detalle := &dto.AnalisisDetalleResponse{
		ProductoID:  productoID.String(),
		Proveedores: []dto.PrecioProveedorResponse{},
	}
	if items[0].Producto != nil {
		detalle.Producto = items[0].Producto.Nombre
	}
	for i, item := range items {
		pr := dto.PrecioProveedorResponse{
			ProveedorID:  item.ProveedorID.String(),
			Precio:       item.Precio,
			DescuentoPct: item.DescuentoPct,
			PrecioNeto:   precioNeto(item.Precio, item.DescuentoPct),
			Disponible:   item.Disponible,
			EsMejor:      i == mejorIdx,
		}
		if item.Proveedor != nil {
			pr.Proveedor = item.Proveedor.RazonSocial
		}
		detalle.Proveedores = append(detalle.Proveedores, pr)
	}
	return detalle, nil
}

// precioNeto applies the percentage discount to a list price.
func precioNeto(precio, descuentoPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(descuentoPct.Div(decimal.NewFromInt(100)))
	return precio.Mul(factor).Round(2)
}

func analisisToResponse(r *model.AnalisisResultado) dto.AnalisisResponse {
	resp := dto.AnalisisResponse{
		ID:                    r.ID.String(),
		ProductoID:            r.ProductoID.String(),
		MejorProveedorID:      r.MejorProveedorID.String(),
		MejorPrecio:           r.MejorPrecio,
		MejorPrecioTexto:      moneda.Formatear(r.MejorPrecio),
		PrecioPromedio:        r.PrecioPromedio,
		PrecioMaximo:          r.PrecioMaximo,
		AhorroMaximo:          r.AhorroMaximo,
		AhorroPct:             r.AhorroPct,
		ProveedoresComparados: r.ProveedoresComparados,
		GeneradoEn:            r.GeneradoEn.Format(time.RFC3339),
	}
	if r.Producto != nil {
		resp.Producto = r.Producto.Nombre
		resp.Categoria = r.Producto.Categoria
	}
	if r.MejorProveedor != nil {
		resp.MejorProveedor = r.MejorProveedor.RazonSocial
	}
	return resp
}
