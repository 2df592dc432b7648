package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactoProveedor is a named contact person attached to a supplier.
type ContactoProveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Cargo       *string
	Telefono    *string
	Email       *string
	CreatedAt   time.Time
}

func (ContactoProveedor) TableName() string { return "contactos_proveedor" }
