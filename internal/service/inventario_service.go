package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"listacomparativa/internal/buscador"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type InventarioService interface {
	Listar(ctx context.Context, busqueda, estado string) ([]dto.InventarioItemResponse, error)
	// Importar loads stock levels from a spreadsheet:
	// A codigo_barras | B stock_actual | C stock_minimo | D ubicacion.
	Importar(ctx context.Context, archivo io.Reader) (*dto.ImportResponse, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	AjustarStock(ctx context.Context, req dto.AjusteStockRequest) (*dto.InventarioItemResponse, error)
	Movimientos(ctx context.Context, limite int) ([]dto.MovimientoStockResponse, error)
	Sugerencias(ctx context.Context, soloPendientes bool) ([]dto.SugerenciaCompraResponse, error)
	GenerarSugerencias(ctx context.Context) ([]dto.SugerenciaCompraResponse, error)
	// ProcesarSugerencia marks a suggestion handled. Monotonic: re-processing
	// an already processed suggestion is rejected.
	ProcesarSugerencia(ctx context.Context, id uuid.UUID) (*dto.SugerenciaCompraResponse, error)
}

type inventarioService struct {
	repo           repository.InventarioRepository
	productoRepo   repository.ProductoRepository
	analisisRepo   repository.AnalisisRepository
	sugerenciaRepo repository.SugerenciaRepository
}

func NewInventarioService(
	repo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	analisisRepo repository.AnalisisRepository,
	sugerenciaRepo repository.SugerenciaRepository,
) InventarioService {
	return &inventarioService{
		repo:           repo,
		productoRepo:   productoRepo,
		analisisRepo:   analisisRepo,
		sugerenciaRepo: sugerenciaRepo,
	}
}

func (s *inventarioService) Listar(ctx context.Context, busqueda, estado string) ([]dto.InventarioItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items = buscador.Filtrar(items, busqueda, func(it model.InventarioItem) []string {
		if it.Producto == nil {
			return nil
		}
		return []string{it.Producto.Nombre, it.Producto.CodigoBarras, it.Producto.Categoria}
	})

	resp := make([]dto.InventarioItemResponse, 0, len(items))
	for i := range items {
		r := inventarioToResponse(&items[i])
		if estado != "" && r.Estado != estado {
			continue
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (s *inventarioService) Importar(ctx context.Context, archivo io.Reader) (*dto.ImportResponse, error) {
	f, err := excelize.OpenReader(archivo)
	if err != nil {
		return nil, errors.New("el archivo no es un .xlsx valido")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("el archivo no contiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leyendo hoja %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return nil, errors.New("el archivo no contiene filas de datos")
	}

	resp := &dto.ImportResponse{DetalleErrores: []dto.ImportErrorRow{}}
	for i, row := range rows[1:] {
		fila := i + 2
		resp.TotalFilas++

		if len(row) < 2 {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, ErrorCode: "ROW_FORMAT",
				Motivo: "la fila no tiene las columnas minimas (codigo_barras, stock_actual)",
			})
			continue
		}
		barcode := strings.TrimSpace(row[0])
		if barcode == "" {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, ErrorCode: "BARCODE_MISSING", Motivo: "codigo de barras vacio",
			})
			continue
		}
		producto, err := s.productoRepo.FindByBarcode(ctx, barcode)
		if err != nil {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, ErrorCode: "ROW_FORMAT",
				Motivo: "producto no registrado; importe primero una lista de precios que lo incluya",
			})
			continue
		}

		stockActual, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil || stockActual < 0 {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, ErrorCode: "STOCK_NOT_NUMBER",
				Motivo: "stock_actual no es un entero valido: " + row[1],
			})
			continue
		}

		stockMinimo := 5
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			if stockMinimo, err = strconv.Atoi(strings.TrimSpace(row[2])); err != nil || stockMinimo < 0 {
				resp.Errores++
				resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
					Fila: fila, CodigoBarras: barcode, ErrorCode: "STOCK_NOT_NUMBER",
					Motivo: "stock_minimo no es un entero valido: " + row[2],
				})
				continue
			}
		}

		var ubicacion *string
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			u := strings.TrimSpace(row[3])
			ubicacion = &u
		}

		anterior := 0
		existente, err := s.repo.FindByProducto(ctx, producto.ID)
		if err == nil {
			anterior = existente.StockActual
			resp.Actualizadas++
		} else {
			resp.Creadas++
		}

		ahora := time.Now()
		item := &model.InventarioItem{
			ProductoID:  producto.ID,
			StockActual: stockActual,
			StockMinimo: stockMinimo,
			Ubicacion:   ubicacion,
		}
		if stockActual > anterior {
			item.UltimaEntrada = &ahora
		}
		if err := s.repo.Upsert(ctx, item); err != nil {
			return nil, err
		}
		if stockActual != anterior {
			_ = s.repo.CreateMovimiento(ctx, &model.MovimientoStock{
				ProductoID:    producto.ID,
				Tipo:          "ajuste",
				Cantidad:      stockActual - anterior,
				StockAnterior: anterior,
				StockNuevo:    stockActual,
				Motivo:        "importacion de inventario",
			})
		}
		resp.Procesadas++
	}
	return resp, nil
}

func (s *inventarioService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	alertas := []dto.AlertaStockResponse{}
	for i := range items {
		it := &items[i]
		if !it.Reponer() {
			continue
		}
		a := dto.AlertaStockResponse{
			ProductoID:  it.ProductoID.String(),
			StockActual: it.StockActual,
			StockMinimo: it.StockMinimo,
			Agotado:     it.StockActual == 0,
		}
		if it.Producto != nil {
			a.Producto = it.Producto.Nombre
		}
		alertas = append(alertas, a)
	}
	return alertas, nil
}

func (s *inventarioService) AjustarStock(ctx context.Context, req dto.AjusteStockRequest) (*dto.InventarioItemResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id invalido: %w", err)
	}
	item, err := s.repo.FindByProducto(ctx, productoID)
	if err != nil {
		return nil, errors.New("el producto no esta en el inventario")
	}

	nuevo := item.StockActual + req.Cantidad
	if nuevo < 0 {
		return nil, fmt.Errorf("el ajuste dejaria el stock en %d; stock actual %d", nuevo, item.StockActual)
	}

	anterior := item.StockActual
	ahora := time.Now()
	item.StockActual = nuevo
	tipo := "entrada"
	if req.Cantidad < 0 {
		tipo = "salida"
		item.UltimaSalida = &ahora
	} else {
		item.UltimaEntrada = &ahora
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMovimiento(ctx, &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          tipo,
		Cantidad:      req.Cantidad,
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Motivo:        req.Motivo,
	}); err != nil {
		return nil, err
	}

	resp := inventarioToResponse(item)
	return &resp, nil
}

func (s *inventarioService) Movimientos(ctx context.Context, limite int) ([]dto.MovimientoStockResponse, error) {
	movimientos, err := s.repo.ListMovimientos(ctx, limite)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoStockResponse, len(movimientos))
	for i, m := range movimientos {
		resp[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			Fecha:         m.CreatedAt.Format(time.RFC3339),
		}
		if m.Producto != nil {
			resp[i].Producto = m.Producto.Nombre
		}
	}
	return resp, nil
}

func (s *inventarioService) Sugerencias(ctx context.Context, soloPendientes bool) ([]dto.SugerenciaCompraResponse, error) {
	sugerencias, err := s.sugerenciaRepo.List(ctx, soloPendientes)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SugerenciaCompraResponse, len(sugerencias))
	for i := range sugerencias {
		resp[i] = sugerenciaToResponse(&sugerencias[i])
	}
	return resp, nil
}

// GenerarSugerencias rebuilds the pending recommendations: every item below
// its minimum gets one, priced at the best analyzed offer. Suggested
// quantity restores stock to twice the minimum.
func (s *inventarioService) GenerarSugerencias(ctx context.Context) ([]dto.SugerenciaCompraResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var nuevas []model.SugerenciaCompra
	for i := range items {
		it := &items[i]
		if !it.Reponer() {
			continue
		}
		analisis, err := s.analisisRepo.FindByProducto(ctx, it.ProductoID)
		if err != nil {
			continue // no analyzed offer, nothing to recommend
		}
		cantidad := 2*it.StockMinimo - it.StockActual
		if cantidad < 1 {
			cantidad = 1
		}
		nuevas = append(nuevas, model.SugerenciaCompra{
			ProductoID:       it.ProductoID,
			ProveedorID:      analisis.MejorProveedorID,
			CantidadSugerida: cantidad,
			PrecioUnitario:   analisis.MejorPrecio,
			CostoTotal:       analisis.MejorPrecio.Mul(decimal.NewFromInt(int64(cantidad))).Round(2),
			DiasEstimados:    s.diasEstimados(ctx, it),
		})
	}

	if err := s.sugerenciaRepo.DeleteNoProcesadas(ctx); err != nil {
		return nil, err
	}
	if err := s.sugerenciaRepo.CreateBatch(ctx, nuevas); err != nil {
		return nil, err
	}
	return s.Sugerencias(ctx, true)
}

// diasEstimados projects how many days the current stock lasts at the
// average daily outflow of the last 30 days. Zero outflow means no estimate.
func (s *inventarioService) diasEstimados(ctx context.Context, it *model.InventarioItem) int {
	salidas, err := s.repo.SalidasDesde(ctx, it.ProductoID, time.Now().AddDate(0, 0, -30))
	if err != nil || salidas <= 0 {
		return 0
	}
	porDia := float64(salidas) / 30.0
	return int(float64(it.StockActual) / porDia)
}

func (s *inventarioService) ProcesarSugerencia(ctx context.Context, id uuid.UUID) (*dto.SugerenciaCompraResponse, error) {
	sug, err := s.sugerenciaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sugerencia no encontrada")
	}
	if sug.Procesada {
		return nil, errors.New("la sugerencia ya fue procesada")
	}
	sug.Procesada = true
	if err := s.sugerenciaRepo.Update(ctx, sug); err != nil {
		return nil, err
	}
	resp := sugerenciaToResponse(sug)
	return &resp, nil
}

func inventarioToResponse(it *model.InventarioItem) dto.InventarioItemResponse {
	estado := "disponible"
	switch {
	case it.StockActual == 0:
		estado = "agotado"
	case it.Reponer():
		estado = "stock_bajo"
	}
	r := dto.InventarioItemResponse{
		ID:          it.ID.String(),
		ProductoID:  it.ProductoID.String(),
		StockActual: it.StockActual,
		StockMinimo: it.StockMinimo,
		Ubicacion:   it.Ubicacion,
		Reponer:     it.Reponer(),
		Estado:      estado,
	}
	if it.Producto != nil {
		r.Producto = it.Producto.Nombre
		r.Codigo = it.Producto.CodigoBarras
		r.Categoria = it.Producto.Categoria
	}
	if it.UltimaEntrada != nil {
		f := it.UltimaEntrada.Format(time.RFC3339)
		r.UltimaEntrada = &f
	}
	if it.UltimaSalida != nil {
		f := it.UltimaSalida.Format(time.RFC3339)
		r.UltimaSalida = &f
	}
	return r
}

func sugerenciaToResponse(s *model.SugerenciaCompra) dto.SugerenciaCompraResponse {
	r := dto.SugerenciaCompraResponse{
		ID:               s.ID.String(),
		ProductoID:       s.ProductoID.String(),
		ProveedorID:      s.ProveedorID.String(),
		CantidadSugerida: s.CantidadSugerida,
		PrecioUnitario:   s.PrecioUnitario,
		CostoTotal:       s.CostoTotal,
		DiasEstimados:    s.DiasEstimados,
		Procesada:        s.Procesada,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
	}
	if s.Producto != nil {
		r.Producto = s.Producto.Nombre
	}
	if s.Proveedor != nil {
		r.Proveedor = s.Proveedor.RazonSocial
	}
	return r
}
