package repository

import (
	"context"
	"time"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, orden *model.OrdenCompra) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.OrdenCompra, error)
	Update(ctx context.Context, orden *model.OrdenCompra) error
	CountPendientes(ctx context.Context) (int64, error)
	// ListPendingRetries returns orders whose retry window has elapsed,
	// oldest first, capped at batchSize per cron tick.
	ListPendingRetries(ctx context.Context, now time.Time, batchSize int) ([]model.OrdenCompra, error)
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, tx *gorm.DB, orden *model.OrdenCompra) error {
	return tx.WithContext(ctx).Create(orden).Error
}

func (r *ordenRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int64, error) {
	// PostgreSQL sequence keeps numbering gapless enough and atomic under
	// concurrent confirmations.
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('ordenes_compra_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var orden model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Proveedor.Contactos").Preload("Usuario").
		Preload("Items").Preload("Items.Producto").
		First(&orden, "id = ?", id).Error
	return &orden, err
}

func (r *ordenRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.OrdenCompra, error) {
	var ordenes []model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Items").Preload("Items.Producto").
		Where("usuario_id = ?", usuarioID).
		Order("numero DESC").Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) Update(ctx context.Context, orden *model.OrdenCompra) error {
	return r.db.WithContext(ctx).Save(orden).Error
}

func (r *ordenRepo) CountPendientes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("estado = ?", model.EstadoOrdenPendiente).Count(&n).Error
	return n, err
}

func (r *ordenRepo) ListPendingRetries(ctx context.Context, now time.Time, batchSize int) ([]model.OrdenCompra, error) {
	var ordenes []model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Proveedor").Preload("Usuario").
		Preload("Items").Preload("Items.Producto").
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.EstadoOrdenPendiente, now).
		Order("next_retry_at").Limit(batchSize).
		Find(&ordenes).Error
	return ordenes, err
}
