package infra

import (
	"fmt"

	"github.com/SistemasCRMC/credenciales/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express.
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

// RunMigrations creates / updates the schema. Also used by integration tests
// against a disposable database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Credencial{},
		&model.Bitacora{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
// Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Case-insensitive unique correo lookup used by login.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_usuarios_correo_lower') THEN
		    CREATE UNIQUE INDEX idx_usuarios_correo_lower ON usuarios (LOWER(correo));
		  END IF;
		END $$`,
		// Partial index for the audit listing filtered by action.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_bitacora_accion_fecha') THEN
		    CREATE INDEX idx_bitacora_accion_fecha ON bitacora (accion, fecha DESC);
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
