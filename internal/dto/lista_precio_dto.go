package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ListaPrecioResponse struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	Proveedor      string `json:"proveedor"`
	ProveedorID    string `json:"proveedor_id"`
	NombreArchivo  string `json:"nombre_archivo"`
	TotalProductos int    `json:"total_productos"`
	Estado         string `json:"estado"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type ListaPrecioItemResponse struct {
	ID           string          `json:"id"`
	ProductoID   string          `json:"producto_id"`
	Producto     string          `json:"producto"`
	CodigoBarras string          `json:"codigo_barras"`
	Precio       decimal.Decimal `json:"precio"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
	Stock        int             `json:"stock"`
	Disponible   bool            `json:"disponible"`
}

type ListaPrecioDetalleResponse struct {
	ListaPrecioResponse
	Items []ListaPrecioItemResponse `json:"items"`
}

// ImportResponse summarizes one spreadsheet import, row errors included.
type ImportResponse struct {
	Lista          *ListaPrecioResponse `json:"lista,omitempty"`
	TotalFilas     int                  `json:"total_filas"`
	Procesadas     int                  `json:"procesadas"`
	Errores        int                  `json:"errores"`
	Creadas        int                  `json:"creadas"`
	Actualizadas   int                  `json:"actualizadas"`
	DetalleErrores []ImportErrorRow     `json:"detalle_errores"`
}

type ImportErrorRow struct {
	Fila         int    `json:"fila"`
	CodigoBarras string `json:"codigo_barras,omitempty"`
	Nombre       string `json:"nombre,omitempty"`
	ErrorCode    string `json:"error_code"` // BARCODE_MISSING|BARCODE_DUPLICATE|PRICE_NOT_NUMBER|PRICE_NEGATIVE|NAME_MISSING|STOCK_NOT_NUMBER|ROW_FORMAT
	Motivo       string `json:"motivo"`
}
