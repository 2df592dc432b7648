package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AjusteStockRequest records a manual inventory movement.
// Cantidad may be negative (salida) but may not drive stock below zero.
type AjusteStockRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required"`
	Motivo     string `json:"motivo"      validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventarioItemResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Codigo        string  `json:"codigo"`
	Categoria     string  `json:"categoria"`
	StockActual   int     `json:"stock_actual"`
	StockMinimo   int     `json:"stock_minimo"`
	Ubicacion     *string `json:"ubicacion"`
	Reponer       bool    `json:"reponer"` // derived: stock_actual < stock_minimo
	Estado        string  `json:"estado"`  // disponible | stock_bajo | agotado
	UltimaEntrada *string `json:"ultima_entrada"`
	UltimaSalida  *string `json:"ultima_salida"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Producto      string `json:"producto"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	Fecha         string `json:"fecha"`
}

type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Producto    string `json:"producto"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
	Agotado     bool   `json:"agotado"`
}

type SugerenciaCompraResponse struct {
	ID               string          `json:"id"`
	ProductoID       string          `json:"producto_id"`
	Producto         string          `json:"producto"`
	ProveedorID      string          `json:"proveedor_id"`
	Proveedor        string          `json:"proveedor"`
	CantidadSugerida int             `json:"cantidad_sugerida"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	CostoTotal       decimal.Decimal `json:"costo_total"`
	DiasEstimados    int             `json:"dias_estimados"`
	Procesada        bool            `json:"procesada"`
	CreatedAt        string          `json:"created_at"`
}
