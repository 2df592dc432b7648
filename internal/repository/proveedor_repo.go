package repository

import (
	"context"

	"listacomparativa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByNIT(ctx context.Context, nit string) (*model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ReplaceContactos(ctx context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error
	CountActivos(ctx context.Context) (int64, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Preload("Contactos").First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) FindByNIT(ctx context.Context, nit string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("nit = ?", nit).First(&p).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Preload("Contactos").
		Where("activo = true").Order("razon_social").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *proveedorRepo) ReplaceContactos(ctx context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proveedor_id = ?", proveedorID).Delete(&model.ContactoProveedor{}).Error; err != nil {
			return err
		}
		if len(contactos) == 0 {
			return nil
		}
		for i := range contactos {
			contactos[i].ProveedorID = proveedorID
		}
		return tx.Create(&contactos).Error
	})
}

func (r *proveedorRepo) CountActivos(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("activo = true").Count(&n).Error
	return n, err
}
