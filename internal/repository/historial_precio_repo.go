package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistorialPrecioRepository interface {
	// Create takes the import transaction so a history row never survives a
	// rolled-back lista.
	Create(ctx context.Context, tx *gorm.DB, h *model.HistorialPrecio) error
	ListPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error)
}

type historialPrecioRepo struct{ db *gorm.DB }

func NewHistorialPrecioRepository(db *gorm.DB) HistorialPrecioRepository {
	return &historialPrecioRepo{db: db}
}

func (r *historialPrecioRepo) Create(ctx context.Context, tx *gorm.DB, h *model.HistorialPrecio) error {
	return tx.WithContext(ctx).Create(h).Error
}

func (r *historialPrecioRepo) ListPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error) {
	var historial []model.HistorialPrecio
	err := r.db.WithContext(ctx).
		Preload("Proveedor").
		Where("producto_id = ?", productoID).
		Order("created_at DESC").
		Find(&historial).Error
	return historial, err
}
