package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalisisRepository interface {
	// ReplaceAll wipes every result and inserts the fresh set atomically —
	// a partially regenerated comparison is never observable.
	ReplaceAll(ctx context.Context, resultados []model.AnalisisResultado) error
	List(ctx context.Context) ([]model.AnalisisResultado, error)
	FindByProducto(ctx context.Context, productoID uuid.UUID) (*model.AnalisisResultado, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.AnalisisResultado, error)
}

type analisisRepo struct{ db *gorm.DB }

func NewAnalisisRepository(db *gorm.DB) AnalisisRepository { return &analisisRepo{db: db} }

func (r *analisisRepo) ReplaceAll(ctx context.Context, resultados []model.AnalisisResultado) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.AnalisisResultado{}).Error; err != nil {
			return err
		}
		if len(resultados) == 0 {
			return nil
		}
		return tx.CreateInBatches(&resultados, 200).Error
	})
}

func (r *analisisRepo) List(ctx context.Context) ([]model.AnalisisResultado, error) {
	var resultados []model.AnalisisResultado
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("MejorProveedor").
		Order("ahorro_maximo DESC").
		Find(&resultados).Error
	return resultados, err
}

func (r *analisisRepo) FindByProducto(ctx context.Context, productoID uuid.UUID) (*model.AnalisisResultado, error) {
	var res model.AnalisisResultado
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("MejorProveedor").
		Where("producto_id = ?", productoID).
		First(&res).Error
	return &res, err
}

func (r *analisisRepo) FindByBarcode(ctx context.Context, barcode string) (*model.AnalisisResultado, error) {
	var res model.AnalisisResultado
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("MejorProveedor").
		Joins("JOIN productos ON productos.id = analisis_resultados.producto_id").
		Where("productos.codigo_barras = ?", barcode).
		First(&res).Error
	return &res, err
}
