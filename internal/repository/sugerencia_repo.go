package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SugerenciaRepository interface {
	// DeleteNoProcesadas clears pending suggestions before a regeneration.
	// Processed ones are kept as history.
	DeleteNoProcesadas(ctx context.Context) error
	CreateBatch(ctx context.Context, sugerencias []model.SugerenciaCompra) error
	List(ctx context.Context, soloPendientes bool) ([]model.SugerenciaCompra, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.SugerenciaCompra, error)
	Update(ctx context.Context, s *model.SugerenciaCompra) error
	CountPendientes(ctx context.Context) (int64, error)
}

type sugerenciaRepo struct{ db *gorm.DB }

func NewSugerenciaRepository(db *gorm.DB) SugerenciaRepository { return &sugerenciaRepo{db: db} }

func (r *sugerenciaRepo) DeleteNoProcesadas(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("procesada = ?", false).
		Delete(&model.SugerenciaCompra{}).Error
}

func (r *sugerenciaRepo) CreateBatch(ctx context.Context, sugerencias []model.SugerenciaCompra) error {
	if len(sugerencias) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(sugerencias, 100).Error
}

func (r *sugerenciaRepo) List(ctx context.Context, soloPendientes bool) ([]model.SugerenciaCompra, error) {
	var sugerencias []model.SugerenciaCompra
	q := r.db.WithContext(ctx).Preload("Producto").Preload("Proveedor").
		Order("costo_total DESC")
	if soloPendientes {
		q = q.Where("procesada = ?", false)
	}
	err := q.Find(&sugerencias).Error
	return sugerencias, err
}

func (r *sugerenciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SugerenciaCompra, error) {
	var s model.SugerenciaCompra
	err := r.db.WithContext(ctx).Preload("Producto").Preload("Proveedor").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sugerenciaRepo) Update(ctx context.Context, s *model.SugerenciaCompra) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sugerenciaRepo) CountPendientes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SugerenciaCompra{}).
		Where("procesada = ?", false).Count(&n).Error
	return n, err
}
