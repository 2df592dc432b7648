package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdenCompra is a purchase request produced when a cart is confirmed: one
// order per supplier, with the cart totals apportioned to its lines.
//
// Estado: "pendiente" (PDF/email not yet delivered), "enviada", "error"
// (retries exhausted — a copy sits in the DLQ for inspection).
type OrdenCompra struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero         int64           `gorm:"uniqueIndex;not null"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DescuentoTotal decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Envio          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Impuestos      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	PDFPath        *string
	RetryCount     int `gorm:"not null;default:0"`
	NextRetryAt    *time.Time
	LastError      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Usuario   *Usuario          `gorm:"foreignKey:UsuarioID"`
	Proveedor *Proveedor        `gorm:"foreignKey:ProveedorID"`
	Items     []OrdenCompraItem `gorm:"foreignKey:OrdenCompraID;constraint:OnDelete:CASCADE"`
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

const (
	EstadoOrdenPendiente = "pendiente"
	EstadoOrdenEnviada   = "enviada"
	EstadoOrdenError     = "error"
)

// OrdenCompraItem is one product line inside a purchase order.
type OrdenCompraItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DescuentoPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (OrdenCompraItem) TableName() string { return "orden_compra_items" }
