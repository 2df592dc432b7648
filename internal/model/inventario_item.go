package model

import (
	"time"

	"github.com/google/uuid"
)

// InventarioItem is the on-hand stock record for one product.
//
// "Necesita reposición" is NOT a column: it is always derived as
// StockActual < StockMinimo when building responses, so it can never drift
// out of sync with the two fields it depends on.
type InventarioItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StockActual   int       `gorm:"not null;default:0"`
	StockMinimo   int       `gorm:"not null;default:5"`
	Ubicacion     *string
	UltimaEntrada *time.Time
	UltimaSalida  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (InventarioItem) TableName() string { return "inventario_items" }

// Reponer reports whether the item is below its reorder threshold.
func (i *InventarioItem) Reponer() bool { return i.StockActual < i.StockMinimo }
