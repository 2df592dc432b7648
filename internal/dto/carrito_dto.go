package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	ProductoID  string `json:"producto_id"  validate:"required,uuid"`
	ProveedorID string `json:"proveedor_id" validate:"required,uuid"`
	Cantidad    int    `json:"cantidad"     validate:"required,min=1"`
}

type CambiarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CarritoItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	ProveedorID    string          `json:"proveedor_id"`
	Proveedor      string          `json:"proveedor"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	Subtotal       decimal.Decimal `json:"subtotal"` // precio neto × cantidad
	Disponible     bool            `json:"disponible"`
	TiempoEntrega  string          `json:"tiempo_entrega"`
}

// ResumenCarrito carries the aggregation recomputed from scratch on every
// read and after every mutation.
type ResumenCarrito struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DescuentoTotal decimal.Decimal `json:"descuento_total"`
	Envio          decimal.Decimal `json:"envio"`
	Impuestos      decimal.Decimal `json:"impuestos"`
	Total          decimal.Decimal `json:"total"`
	TotalTexto     string          `json:"total_texto"`
}

type CarritoResponse struct {
	Items   []CarritoItemResponse `json:"items"`
	Resumen ResumenCarrito        `json:"resumen"`
}

type ConfirmarCarritoResponse struct {
	Ordenes []OrdenCompraResponse `json:"ordenes"`
}
