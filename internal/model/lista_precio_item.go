package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListaPrecioItem links a supplier and a product with the offered price,
// discount percentage, and the supplier-side stock/availability.
// One row per (lista, producto); re-importing a lista replaces its items.
type ListaPrecioItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ListaPrecioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DescuentoPct  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock         int             `gorm:"not null;default:0"`
	Disponible    bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (ListaPrecioItem) TableName() string { return "lista_precio_items" }
