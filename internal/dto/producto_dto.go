package dto

import "github.com/shopspring/decimal"

type ProductoResponse struct {
	ID           string  `json:"id"`
	Codigo       string  `json:"codigo"`
	CodigoBarras string  `json:"codigo_barras"`
	Nombre       string  `json:"nombre"`
	Descripcion  *string `json:"descripcion"`
	Marca        string  `json:"marca"`
	Categoria    string  `json:"categoria"`
}

// HistorialPrecioResponse is one immutable price-change record of a product.
type HistorialPrecioResponse struct {
	ID            string          `json:"id"`
	Proveedor     string          `json:"proveedor"`
	PrecioAntes   decimal.Decimal `json:"precio_antes"`
	PrecioDespues decimal.Decimal `json:"precio_despues"`
	CambioPct     decimal.Decimal `json:"cambio_pct"`
	Motivo        string          `json:"motivo"`
	Fecha         string          `json:"fecha"`
}
