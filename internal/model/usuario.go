package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "comprador" | "admin"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Empresa      string    `gorm:"not null"`
	TipoNegocio  *string
	Telefono     *string
	Direccion    *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'comprador'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
