package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarritoRepository interface {
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.CarritoItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CarritoItem, error)
	FindByUsuarioProductoProveedor(ctx context.Context, usuarioID, productoID, proveedorID uuid.UUID) (*model.CarritoItem, error)
	Create(ctx context.Context, item *model.CarritoItem) error
	Update(ctx context.Context, item *model.CarritoItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUsuario(ctx context.Context, usuarioID uuid.UUID) error
	// DB exposes the underlying handle so the service can run the cart
	// confirmation inside a single transaction.
	DB() *gorm.DB
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) DB() *gorm.DB { return r.db }

func (r *carritoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.CarritoItem, error) {
	var items []model.CarritoItem
	err := r.db.WithContext(ctx).Preload("Producto").Preload("Proveedor").
		Where("usuario_id = ?", usuarioID).
		Order("created_at").Find(&items).Error
	return items, err
}

func (r *carritoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CarritoItem, error) {
	var item model.CarritoItem
	err := r.db.WithContext(ctx).Preload("Producto").Preload("Proveedor").
		First(&item, "id = ?", id).Error
	return &item, err
}

func (r *carritoRepo) FindByUsuarioProductoProveedor(ctx context.Context, usuarioID, productoID, proveedorID uuid.UUID) (*model.CarritoItem, error) {
	var item model.CarritoItem
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND producto_id = ? AND proveedor_id = ?", usuarioID, productoID, proveedorID).
		First(&item).Error
	return &item, err
}

func (r *carritoRepo) Create(ctx context.Context, item *model.CarritoItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *carritoRepo) Update(ctx context.Context, item *model.CarritoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *carritoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CarritoItem{}, "id = ?", id).Error
}

func (r *carritoRepo) DeleteByUsuario(ctx context.Context, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CarritoItem{}, "usuario_id = ?", usuarioID).Error
}
