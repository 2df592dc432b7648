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
	"gorm.io/gorm"
)

type ListaPrecioService interface {
	Importar(ctx context.Context, proveedorID uuid.UUID, nombre, nombreArchivo string, archivo io.Reader) (*dto.ImportResponse, error)
	Listar(ctx context.Context, busqueda string) ([]dto.ListaPrecioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ListaPrecioDetalleResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type listaPrecioService struct {
	repo          repository.ListaPrecioRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	historialRepo repository.HistorialPrecioRepository
}

func NewListaPrecioService(
	repo repository.ListaPrecioRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	historialRepo repository.HistorialPrecioRepository,
) ListaPrecioService {
	return &listaPrecioService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		historialRepo: historialRepo,
	}
}

// filaLista is one parsed spreadsheet row, ready to be written.
type filaLista struct {
	barcode    string
	nombre     string
	marca      string
	categoria  string
	precio     decimal.Decimal
	descuento  decimal.Decimal
	stock      int
	disponible bool
}

// Expected columns (first sheet, header row skipped):
//
//	A codigo_barras | B nombre | C marca | D categoria | E precio |
//	F descuento_pct | G stock | H disponible
//
// Rows with errors are reported and skipped; the import never aborts
// halfway through a readable file. All writes happen in one transaction,
// and a new lista retires the proveedor's previous active ones.
func (s *listaPrecioService) Importar(ctx context.Context, proveedorID uuid.UUID, nombre, nombreArchivo string, archivo io.Reader) (*dto.ImportResponse, error) {
	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil || !proveedor.Activo {
		return nil, errors.New("proveedor no encontrado")
	}

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
	var filas []filaLista
	filaPorBarcode := make(map[string]int) // barcode -> fila where it first appeared

	for i, row := range rows[1:] {
		fila := i + 2 // 1-based, header included
		resp.TotalFilas++

		if len(row) < 5 {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, ErrorCode: "ROW_FORMAT",
				Motivo: "la fila no tiene las columnas minimas (codigo_barras, nombre, marca, categoria, precio)",
			})
			continue
		}

		barcode := strings.TrimSpace(row[0])
		nombreProd := strings.TrimSpace(row[1])
		marca := strings.TrimSpace(row[2])
		categoria := strings.TrimSpace(row[3])

		if barcode == "" {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, Nombre: nombreProd, ErrorCode: "BARCODE_MISSING",
				Motivo: "codigo de barras vacio",
			})
			continue
		}
		if nombreProd == "" {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, ErrorCode: "NAME_MISSING",
				Motivo: "nombre de producto vacio",
			})
			continue
		}
		// One offer per producto within a file: a repeated barcode would feed
		// the same proveedor twice into the price comparison.
		if prev, dup := filaPorBarcode[barcode]; dup {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, Nombre: nombreProd,
				ErrorCode: "BARCODE_DUPLICATE",
				Motivo:    fmt.Sprintf("codigo de barras repetido, ya aparece en la fila %d", prev),
			})
			continue
		}

		precio, err := parseDecimalCelda(row[4])
		if err != nil {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, Nombre: nombreProd,
				ErrorCode: "PRICE_NOT_NUMBER", Motivo: "precio no es numerico: " + row[4],
			})
			continue
		}
		if precio.IsNegative() {
			resp.Errores++
			resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
				Fila: fila, CodigoBarras: barcode, Nombre: nombreProd,
				ErrorCode: "PRICE_NEGATIVE", Motivo: "precio negativo: " + precio.String(),
			})
			continue
		}

		descuento := decimal.Zero
		if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
			if descuento, err = parseDecimalCelda(row[5]); err != nil {
				resp.Errores++
				resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
					Fila: fila, CodigoBarras: barcode, Nombre: nombreProd,
					ErrorCode: "PRICE_NOT_NUMBER", Motivo: "descuento no es numerico: " + row[5],
				})
				continue
			}
		}

		stock := 0
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			if stock, err = strconv.Atoi(strings.TrimSpace(row[6])); err != nil {
				resp.Errores++
				resp.DetalleErrores = append(resp.DetalleErrores, dto.ImportErrorRow{
					Fila: fila, CodigoBarras: barcode, Nombre: nombreProd,
					ErrorCode: "STOCK_NOT_NUMBER", Motivo: "stock no es numerico: " + row[6],
				})
				continue
			}
		}

		disponible := true
		if len(row) > 7 {
			v := strings.ToLower(strings.TrimSpace(row[7]))
			disponible = v != "no" && v != "false" && v != "0"
		}

		filaPorBarcode[barcode] = fila
		filas = append(filas, filaLista{
			barcode:    barcode,
			nombre:     nombreProd,
			marca:      marca,
			categoria:  categoria,
			precio:     precio,
			descuento:  descuento,
			stock:      stock,
			disponible: disponible,
		})
		resp.Procesadas++
	}

	if resp.Procesadas == 0 {
		return resp, errors.New("ninguna fila pudo procesarse")
	}

	// All writes in one transaction: products, history, the lista and its
	// items either land together or not at all.
	lista := &model.ListaPrecio{
		Nombre:         nombre,
		ProveedorID:    proveedorID,
		NombreArchivo:  nombreArchivo,
		TotalProductos: resp.Procesadas,
		Estado:         "activa",
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		items := make([]model.ListaPrecioItem, 0, len(filas))
		for _, fr := range filas {
			producto, creado, err := s.upsertProducto(ctx, tx, fr.barcode, fr.nombre, fr.marca, fr.categoria)
			if err != nil {
				return err
			}
			if creado {
				resp.Creadas++
			} else {
				resp.Actualizadas++
			}

			// Price history: compare against the latest active entry for this
			// producto+proveedor before this import replaces it.
			if err := s.registrarCambioPrecio(ctx, tx, producto.ID, proveedorID, fr.precio); err != nil {
				return err
			}

			items = append(items, model.ListaPrecioItem{
				ProductoID:   producto.ID,
				Precio:       fr.precio,
				DescuentoPct: fr.descuento,
				Stock:        fr.stock,
				Disponible:   fr.disponible,
			})
		}
		if err := s.repo.MarcarReemplazadas(ctx, tx, proveedorID); err != nil {
			return err
		}
		return s.repo.CreateConItems(ctx, tx, lista, items)
	})
	if txErr != nil {
		return nil, txErr
	}
	lista.Proveedor = proveedor

	lr := listaToResponse(lista)
	resp.Lista = &lr
	return resp, nil
}

func (s *listaPrecioService) upsertProducto(ctx context.Context, tx *gorm.DB, barcode, nombre, marca, categoria string) (*model.Producto, bool, error) {
	p, err := s.productoRepo.FindByBarcode(ctx, barcode)
	if err == nil {
		// Reference data only fills in blanks — an import never renames
		// an existing product.
		cambiado := false
		if p.Marca == "" && marca != "" {
			p.Marca = marca
			cambiado = true
		}
		if p.Categoria == "" && categoria != "" {
			p.Categoria = categoria
			cambiado = true
		}
		if cambiado {
			if err := s.productoRepo.Update(ctx, tx, p); err != nil {
				return nil, false, err
			}
		}
		return p, false, nil
	}

	nuevo := &model.Producto{
		Codigo:       barcode,
		CodigoBarras: barcode,
		Nombre:       nombre,
		Marca:        marca,
		Categoria:    categoria,
	}
	if err := s.productoRepo.Create(ctx, tx, nuevo); err != nil {
		return nil, false, err
	}
	return nuevo, true, nil
}

func (s *listaPrecioService) registrarCambioPrecio(ctx context.Context, tx *gorm.DB, productoID, proveedorID uuid.UUID, nuevoPrecio decimal.Decimal) error {
	anterior, err := s.repo.ItemPorProductoProveedor(ctx, productoID, proveedorID)
	if err != nil {
		return nil // first price from this supplier, nothing to compare
	}
	if anterior.Precio.Equal(nuevoPrecio) {
		return nil
	}
	cambio := decimal.Zero
	if !anterior.Precio.IsZero() {
		cambio = nuevoPrecio.Sub(anterior.Precio).Div(anterior.Precio).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return s.historialRepo.Create(ctx, tx, &model.HistorialPrecio{
		ProductoID:    productoID,
		ProveedorID:   proveedorID,
		PrecioAntes:   anterior.Precio,
		PrecioDespues: nuevoPrecio,
		CambioPct:     cambio,
		Motivo:        "importacion_lista",
	})
}

func (s *listaPrecioService) Listar(ctx context.Context, busqueda string) ([]dto.ListaPrecioResponse, error) {
	listas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	listas = buscador.Filtrar(listas, busqueda, func(l model.ListaPrecio) []string {
		campos := []string{l.Nombre, l.NombreArchivo}
		if l.Proveedor != nil {
			campos = append(campos, l.Proveedor.RazonSocial)
		}
		return campos
	})
	resp := make([]dto.ListaPrecioResponse, len(listas))
	for i := range listas {
		resp[i] = listaToResponse(&listas[i])
	}
	return resp, nil
}

func (s *listaPrecioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ListaPrecioDetalleResponse, error) {
	lista, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("lista de precios no encontrada")
	}
	detalle := &dto.ListaPrecioDetalleResponse{
		ListaPrecioResponse: listaToResponse(lista),
		Items:               []dto.ListaPrecioItemResponse{},
	}
	for _, item := range lista.Items {
		ir := dto.ListaPrecioItemResponse{
			ID:           item.ID.String(),
			ProductoID:   item.ProductoID.String(),
			Precio:       item.Precio,
			DescuentoPct: item.DescuentoPct,
			Stock:        item.Stock,
			Disponible:   item.Disponible,
		}
		if item.Producto != nil {
			ir.Producto = item.Producto.Nombre
			ir.CodigoBarras = item.Producto.CodigoBarras
		}
		detalle.Items = append(detalle.Items, ir)
	}
	return detalle, nil
}

func (s *listaPrecioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("lista de precios no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func listaToResponse(l *model.ListaPrecio) dto.ListaPrecioResponse {
	resp := dto.ListaPrecioResponse{
		ID:             l.ID.String(),
		Nombre:         l.Nombre,
		ProveedorID:    l.ProveedorID.String(),
		NombreArchivo:  l.NombreArchivo,
		TotalProductos: l.TotalProductos,
		Estado:         l.Estado,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Proveedor != nil {
		resp.Proveedor = l.Proveedor.RazonSocial
	}
	return resp
}

// parseDecimalCelda tolerates "$ 1.234.567,89", "1234567.89" and plain ints.
func parseDecimalCelda(celda string) (decimal.Decimal, error) {
	v := strings.TrimSpace(celda)
	v = strings.TrimPrefix(v, "$")
	v = strings.TrimSpace(v)
	if strings.Contains(v, ",") {
		// es-CO convention: dot thousands, comma decimals
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	return decimal.NewFromString(v)
}
