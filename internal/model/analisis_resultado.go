package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnalisisResultado is the derived best-price row per product. Rows are never
// mutated in place: POST /analisis/generar wipes and reinserts the whole set
// inside one transaction.
type AnalisisResultado struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MejorProveedorID      uuid.UUID       `gorm:"type:uuid;not null"`
	MejorPrecio           decimal.Decimal `gorm:"type:decimal(14,2);not null"` // net of discount
	PrecioPromedio        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PrecioMaximo          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	AhorroMaximo          decimal.Decimal `gorm:"type:decimal(14,2);not null"` // maximo - mejor
	AhorroPct             decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	ProveedoresComparados int             `gorm:"not null"`
	GeneradoEn            time.Time       `gorm:"not null"`

	Producto       *Producto  `gorm:"foreignKey:ProductoID"`
	MejorProveedor *Proveedor `gorm:"foreignKey:MejorProveedorID"`
}

func (AnalisisResultado) TableName() string { return "analisis_resultados" }
