package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a supplier with commercial data.
// Deactivation is a soft flag — price history and orders keep their references.
type Proveedor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial   string    `gorm:"not null"`
	NIT           string    `gorm:"column:nit;uniqueIndex;not null"`
	Telefono      *string
	Email         *string
	Direccion     *string
	Ciudad        *string
	CondicionPago *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Contactos []ContactoProveedor `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
