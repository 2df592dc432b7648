package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	// Create and Update run inside the import transaction, so they take the
	// caller's tx like OrdenRepository does.
	Create(ctx context.Context, tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error)
	List(ctx context.Context, categoria string) ([]model.Producto, error)
	Update(ctx context.Context, tx *gorm.DB, p *model.Producto) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo_barras = ?", barcode).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, categoria string) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Order("nombre")
	if categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	var productos []model.Producto
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return tx.WithContext(ctx).Save(p).Error
}
