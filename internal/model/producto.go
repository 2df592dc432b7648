package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto is immutable reference data: created (or matched by barcode)
// during price-list imports, never edited through the API.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string    `gorm:"index;not null"` // SKU
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Marca        string `gorm:"not null;default:''"`
	Categoria    string `gorm:"index;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
