package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SugerenciaCompra is a system-generated reorder recommendation built from
// inventory levels plus the latest analysis. Procesada is monotonic:
// false → true, never back.
type SugerenciaCompra struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID      uuid.UUID       `gorm:"type:uuid;not null"`
	CantidadSugerida int             `gorm:"not null"`
	PrecioUnitario   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CostoTotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiasEstimados    int             `gorm:"not null;default:0"` // days of stock left at current outflow
	Procesada        bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (SugerenciaCompra) TableName() string { return "sugerencias_compra" }
