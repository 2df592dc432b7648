package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarritoItem is one staged line in a user's cart: a product chosen from a
// specific supplier at the price/discount captured when it was added.
// Cantidad is always >= 1 — decrements below 1 are rejected at the service.
type CarritoItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_carrito_usuario"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProveedorID    uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null;default:1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DescuentoPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Disponible     bool            `gorm:"not null;default:true"`
	TiempoEntrega  string          `gorm:"not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (CarritoItem) TableName() string { return "carrito_items" }
