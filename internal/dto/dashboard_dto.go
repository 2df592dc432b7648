package dto

import "github.com/shopspring/decimal"

// ResumenDashboard aggregates the counters shown on the landing page.
// Built with an all-of concurrent join: if any lookup fails the whole
// summary fails (no partial figures).
type ResumenDashboard struct {
	ProveedoresActivos    int64           `json:"proveedores_activos"`
	ProductosEnInventario int64           `json:"productos_en_inventario"`
	ProductosStockBajo    int64           `json:"productos_stock_bajo"`
	ValorInventario       decimal.Decimal `json:"valor_inventario"`
	ValorInventarioTexto  string          `json:"valor_inventario_texto"`
	SugerenciasPendientes int64           `json:"sugerencias_pendientes"`
	OrdenesPendientes     int64           `json:"ordenes_pendientes"`
	ListasActivas         int64           `json:"listas_activas"`
}

// ConsultaPrecioResponse is the public best-price lookup by barcode.
type ConsultaPrecioResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	CodigoBarras   string          `json:"codigo_barras"`
	MejorProveedor string          `json:"mejor_proveedor"`
	MejorPrecio    decimal.Decimal `json:"mejor_precio"`
	PrecioTexto    string          `json:"precio_texto"`
	AhorroMaximo   decimal.Decimal `json:"ahorro_maximo"`
}
