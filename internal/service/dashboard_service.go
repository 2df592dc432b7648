package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"listacomparativa/internal/dto"
	"listacomparativa/internal/moneda"
	"listacomparativa/internal/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const precioCacheTTL = 5 * time.Minute

type DashboardService interface {
	// Resumen joins the landing-page counters concurrently. All-of
	// semantics: any failed lookup fails the whole summary.
	Resumen(ctx context.Context) (*dto.ResumenDashboard, error)
	// ConsultaPrecio is the public best-price lookup by barcode,
	// cache-aside over Redis.
	ConsultaPrecio(ctx context.Context, barcode string) (*dto.ConsultaPrecioResponse, error)
}

type dashboardService struct {
	proveedorRepo  repository.ProveedorRepository
	inventarioRepo repository.InventarioRepository
	sugerenciaRepo repository.SugerenciaRepository
	ordenRepo      repository.OrdenRepository
	listaRepo      repository.ListaPrecioRepository
	analisisRepo   repository.AnalisisRepository
	rdb            *redis.Client
}

func NewDashboardService(
	proveedorRepo repository.ProveedorRepository,
	inventarioRepo repository.InventarioRepository,
	sugerenciaRepo repository.SugerenciaRepository,
	ordenRepo repository.OrdenRepository,
	listaRepo repository.ListaPrecioRepository,
	analisisRepo repository.AnalisisRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		proveedorRepo:  proveedorRepo,
		inventarioRepo: inventarioRepo,
		sugerenciaRepo: sugerenciaRepo,
		ordenRepo:      ordenRepo,
		listaRepo:      listaRepo,
		analisisRepo:   analisisRepo,
		rdb:            rdb,
	}
}

func (s *dashboardService) Resumen(ctx context.Context) (*dto.ResumenDashboard, error) {
	var resumen dto.ResumenDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		resumen.ProveedoresActivos, err = s.proveedorRepo.CountActivos(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.ProductosEnInventario, err = s.inventarioRepo.CountItems(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.ProductosStockBajo, err = s.inventarioRepo.CountStockBajo(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.ValorInventario, err = s.inventarioRepo.ValorInventario(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.SugerenciasPendientes, err = s.sugerenciaRepo.CountPendientes(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.OrdenesPendientes, err = s.ordenRepo.CountPendientes(gctx)
		return
	})
	g.Go(func() (err error) {
		resumen.ListasActivas, err = s.listaRepo.CountActivas(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	resumen.ValorInventarioTexto = moneda.Formatear(resumen.ValorInventario)
	return &resumen, nil
}

func (s *dashboardService) ConsultaPrecio(ctx context.Context, barcode string) (*dto.ConsultaPrecioResponse, error) {
	cacheKey := "precio:" + barcode

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	res, err := s.analisisRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, errors.New("producto no encontrado o sin analisis")
	}
	resp := &dto.ConsultaPrecioResponse{
		ProductoID:   res.ProductoID.String(),
		MejorPrecio:  res.MejorPrecio,
		PrecioTexto:  moneda.Formatear(res.MejorPrecio),
		AhorroMaximo: res.AhorroMaximo,
	}
	if res.Producto != nil {
		resp.Producto = res.Producto.Nombre
		resp.CodigoBarras = res.Producto.CodigoBarras
	}
	if res.MejorProveedor != nil {
		resp.MejorProveedor = res.MejorProveedor.RazonSocial
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, data, precioCacheTTL)
		}
	}
	return resp, nil
}
