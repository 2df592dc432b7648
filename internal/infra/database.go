package infra

import (
	"fmt"

	"listacomparativa/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (the order-number sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Proveedor{},
		&model.ContactoProveedor{},
		&model.Producto{},
		&model.ListaPrecio{},
		&model.ListaPrecioItem{},
		&model.HistorialPrecio{},
		&model.AnalisisResultado{},
		&model.InventarioItem{},
		&model.MovimientoStock{},
		&model.SugerenciaCompra{},
		&model.CarritoItem{},
		&model.OrdenCompra{},
		&model.OrdenCompraItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS ordenes_compra_numero_seq START 1000`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_lista_precio_items_prod_prov') THEN
		    CREATE INDEX idx_lista_precio_items_prod_prov
		        ON lista_precio_items (producto_id, proveedor_id);
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
