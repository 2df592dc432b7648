package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListaPrecioRepository interface {
	// CreateConItems persists a lista and its parsed items inside the caller's
	// transaction.
	CreateConItems(ctx context.Context, tx *gorm.DB, lista *model.ListaPrecio, items []model.ListaPrecioItem) error
	// MarcarReemplazadas retires every activa lista of the proveedor. A new
	// import supersedes whatever the supplier sent before.
	MarcarReemplazadas(ctx context.Context, tx *gorm.DB, proveedorID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ListaPrecio, error)
	List(ctx context.Context) ([]model.ListaPrecio, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ItemsDeListasActivas returns the comparison input: every available item
	// belonging to an active lista, products and suppliers preloaded.
	ItemsDeListasActivas(ctx context.Context) ([]model.ListaPrecioItem, error)
	ItemsPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ListaPrecioItem, error)
	ItemPorProductoProveedor(ctx context.Context, productoID, proveedorID uuid.UUID) (*model.ListaPrecioItem, error)
	CountActivas(ctx context.Context) (int64, error)
	DB() *gorm.DB
}

type listaPrecioRepo struct{ db *gorm.DB }

func NewListaPrecioRepository(db *gorm.DB) ListaPrecioRepository { return &listaPrecioRepo{db: db} }

func (r *listaPrecioRepo) DB() *gorm.DB { return r.db }

func (r *listaPrecioRepo) CreateConItems(ctx context.Context, tx *gorm.DB, lista *model.ListaPrecio, items []model.ListaPrecioItem) error {
	if err := tx.WithContext(ctx).Create(lista).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ListaPrecioID = lista.ID
		items[i].ProveedorID = lista.ProveedorID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(&items, 200).Error
}

func (r *listaPrecioRepo) MarcarReemplazadas(ctx context.Context, tx *gorm.DB, proveedorID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.ListaPrecio{}).
		Where("proveedor_id = ? AND estado = ?", proveedorID, "activa").
		Update("estado", "reemplazada").Error
}

func (r *listaPrecioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ListaPrecio, error) {
	var lista model.ListaPrecio
	err := r.db.WithContext(ctx).
		Preload("Proveedor").
		Preload("Items").
		Preload("Items.Producto").
		First(&lista, id).Error
	return &lista, err
}

func (r *listaPrecioRepo) List(ctx context.Context) ([]model.ListaPrecio, error) {
	var listas []model.ListaPrecio
	err := r.db.WithContext(ctx).Preload("Proveedor").
		Order("created_at DESC").Find(&listas).Error
	return listas, err
}

func (r *listaPrecioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lista_precio_id = ?", id).Delete(&model.ListaPrecioItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ListaPrecio{}, id).Error
	})
}

func (r *listaPrecioRepo) ItemsDeListasActivas(ctx context.Context) ([]model.ListaPrecioItem, error) {
	var items []model.ListaPrecioItem
	err := r.db.WithContext(ctx).
		Joins("JOIN listas_precio ON listas_precio.id = lista_precio_items.lista_precio_id").
		Where("listas_precio.estado = ?", "activa").
		Where("lista_precio_items.disponible = true").
		Preload("Producto").
		Preload("Proveedor").
		Find(&items).Error
	return items, err
}

func (r *listaPrecioRepo) ItemsPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ListaPrecioItem, error) {
	var items []model.ListaPrecioItem
	err := r.db.WithContext(ctx).
		Joins("JOIN listas_precio ON listas_precio.id = lista_precio_items.lista_precio_id").
		Where("listas_precio.estado = ?", "activa").
		Where("lista_precio_items.producto_id = ?", productoID).
		Preload("Producto").
		Preload("Proveedor").
		Find(&items).Error
	return items, err
}

func (r *listaPrecioRepo) ItemPorProductoProveedor(ctx context.Context, productoID, proveedorID uuid.UUID) (*model.ListaPrecioItem, error) {
	var item model.ListaPrecioItem
	err := r.db.WithContext(ctx).
		Joins("JOIN listas_precio ON listas_precio.id = lista_precio_items.lista_precio_id").
		Where("listas_precio.estado = ?", "activa").
		Where("lista_precio_items.producto_id = ? AND lista_precio_items.proveedor_id = ?", productoID, proveedorID).
		Order("lista_precio_items.created_at DESC").
		First(&item).Error
	return &item, err
}

func (r *listaPrecioRepo) CountActivas(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ListaPrecio{}).Where("estado = ?", "activa").Count(&n).Error
	return n, err
}
