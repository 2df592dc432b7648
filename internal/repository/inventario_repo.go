package repository

import (
	"context"
	"time"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventarioRepository interface {
	Upsert(ctx context.Context, item *model.InventarioItem) error
	FindByProducto(ctx context.Context, productoID uuid.UUID) (*model.InventarioItem, error)
	List(ctx context.Context) ([]model.InventarioItem, error)
	Update(ctx context.Context, item *model.InventarioItem) error
	CreateMovimiento(ctx context.Context, mov *model.MovimientoStock) error
	ListMovimientos(ctx context.Context, limite int) ([]model.MovimientoStock, error)
	// SalidasDesde sums units moved out of a product since a cutoff (for the
	// days-of-stock estimate).
	SalidasDesde(ctx context.Context, productoID uuid.UUID, desde time.Time) (int64, error)
	CountItems(ctx context.Context) (int64, error)
	CountStockBajo(ctx context.Context) (int64, error)
	// ValorInventario prices on-hand stock at the best analyzed price.
	ValorInventario(ctx context.Context) (decimal.Decimal, error)
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) Upsert(ctx context.Context, item *model.InventarioItem) error {
	var existente model.InventarioItem
	err := r.db.WithContext(ctx).Where("producto_id = ?", item.ProductoID).First(&existente).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ID = existente.ID
	item.CreatedAt = existente.CreatedAt
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventarioRepo) FindByProducto(ctx context.Context, productoID uuid.UUID) (*model.InventarioItem, error) {
	var item model.InventarioItem
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("producto_id = ?", productoID).First(&item).Error
	return &item, err
}

func (r *inventarioRepo) List(ctx context.Context) ([]model.InventarioItem, error) {
	var items []model.InventarioItem
	err := r.db.WithContext(ctx).Preload("Producto").
		Joins("JOIN productos ON productos.id = inventario_items.producto_id").
		Order("productos.nombre").Find(&items).Error
	return items, err
}

func (r *inventarioRepo) Update(ctx context.Context, item *model.InventarioItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventarioRepo) CreateMovimiento(ctx context.Context, mov *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(mov).Error
}

func (r *inventarioRepo) ListMovimientos(ctx context.Context, limite int) ([]model.MovimientoStock, error) {
	var movimientos []model.MovimientoStock
	q := r.db.WithContext(ctx).Preload("Producto").Order("created_at DESC")
	if limite > 0 {
		q = q.Limit(limite)
	}
	err := q.Find(&movimientos).Error
	return movimientos, err
}

func (r *inventarioRepo) SalidasDesde(ctx context.Context, productoID uuid.UUID, desde time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).
		Select("COALESCE(SUM(-cantidad), 0)").
		Where("producto_id = ? AND cantidad < 0 AND created_at >= ?", productoID, desde).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *inventarioRepo) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventarioItem{}).Count(&n).Error
	return n, err
}

func (r *inventarioRepo) CountStockBajo(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventarioItem{}).
		Where("stock_actual < stock_minimo").Count(&n).Error
	return n, err
}

func (r *inventarioRepo) ValorInventario(ctx context.Context) (decimal.Decimal, error) {
	var valor decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.InventarioItem{}).
		Select("SUM(inventario_items.stock_actual * analisis_resultados.mejor_precio)").
		Joins("JOIN analisis_resultados ON analisis_resultados.producto_id = inventario_items.producto_id").
		Scan(&valor).Error
	if err != nil || !valor.Valid {
		return decimal.Zero, err
	}
	return valor.Decimal, nil
}
