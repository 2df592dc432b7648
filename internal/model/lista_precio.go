package model

import (
	"time"

	"github.com/google/uuid"
)

// ListaPrecio is one uploaded price-list batch from a supplier.
// Estado: "activa" | "reemplazada" | "inactiva". A new upload from the same
// proveedor retires its previous activa listas to "reemplazada"; only items
// of active listas feed the price-comparison analysis.
type ListaPrecio struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"not null"`
	ProveedorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	NombreArchivo  string    `gorm:"not null"`
	TotalProductos int       `gorm:"not null;default:0"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'activa'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor       `gorm:"foreignKey:ProveedorID"`
	Items     []ListaPrecioItem `gorm:"foreignKey:ListaPrecioID;constraint:OnDelete:CASCADE"`
}

func (ListaPrecio) TableName() string { return "listas_precio" }
