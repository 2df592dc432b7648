package dto

import "github.com/shopspring/decimal"

type OrdenCompraItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type OrdenCompraResponse struct {
	ID             string                    `json:"id"`
	Numero         int64                     `json:"numero"`
	ProveedorID    string                    `json:"proveedor_id"`
	Proveedor      string                    `json:"proveedor"`
	Subtotal       decimal.Decimal           `json:"subtotal"`
	DescuentoTotal decimal.Decimal           `json:"descuento_total"`
	Envio          decimal.Decimal           `json:"envio"`
	Impuestos      decimal.Decimal           `json:"impuestos"`
	Total          decimal.Decimal           `json:"total"`
	Estado         string                    `json:"estado"`
	CreatedAt      string                    `json:"created_at"`
	Items          []OrdenCompraItemResponse `json:"items,omitempty"`
}
