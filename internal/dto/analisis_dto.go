package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AnalisisResponse struct {
	ID                    string          `json:"id"`
	ProductoID            string          `json:"producto_id"`
	Producto              string          `json:"producto"`
	Categoria             string          `json:"categoria"`
	MejorProveedorID      string          `json:"mejor_proveedor_id"`
	MejorProveedor        string          `json:"mejor_proveedor"`
	MejorPrecio           decimal.Decimal `json:"mejor_precio"`
	MejorPrecioTexto      string          `json:"mejor_precio_texto"`
	PrecioPromedio        decimal.Decimal `json:"precio_promedio"`
	PrecioMaximo          decimal.Decimal `json:"precio_maximo"`
	AhorroMaximo          decimal.Decimal `json:"ahorro_maximo"`
	AhorroPct             decimal.Decimal `json:"ahorro_pct"`
	ProveedoresComparados int             `json:"proveedores_comparados"`
	GeneradoEn            string          `json:"generado_en"`
}

// PrecioProveedorResponse is one supplier's offer inside the per-product
// breakdown (GET /analisis/:producto_id).
type PrecioProveedorResponse struct {
	ProveedorID  string          `json:"proveedor_id"`
	Proveedor    string          `json:"proveedor"`
	Precio       decimal.Decimal `json:"precio"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
	PrecioNeto   decimal.Decimal `json:"precio_neto"`
	Disponible   bool            `json:"disponible"`
	EsMejor      bool            `json:"es_mejor"`
}

type AnalisisDetalleResponse struct {
	ProductoID  string                    `json:"producto_id"`
	Producto    string                    `json:"producto"`
	Proveedores []PrecioProveedorResponse `json:"proveedores"`
}

type GenerarAnalisisResponse struct {
	ProductosAnalizados int    `json:"productos_analizados"`
	GeneradoEn          string `json:"generado_en"`
}
