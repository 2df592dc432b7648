package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorialPrecio registra cada cambio de precio detectado al importar una
// lista. Los registros son inmutables — nunca se eliminan ni modifican.
type HistorialPrecio struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrecioAntes   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PrecioDespues decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CambioPct     decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Motivo        string          `gorm:"not null;default:'importacion_lista'"`
	CreatedAt     time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
