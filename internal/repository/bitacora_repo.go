package repository

import (
	"context"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/model"

	"gorm.io/gorm"
)

type BitacoraRepository interface {
	Create(ctx context.Context, b *model.Bitacora) error
	// CreateTx registra la acción dentro de la misma transacción que la
	// escritura de la credencial.
	CreateTx(tx *gorm.DB, b *model.Bitacora) error
	List(ctx context.Context, filter dto.BitacoraFilter) ([]model.Bitacora, int64, error)
}

type bitacoraRepo struct{ db *gorm.DB }

func NewBitacoraRepository(db *gorm.DB) BitacoraRepository { return &bitacoraRepo{db: db} }

func (r *bitacoraRepo) Create(ctx context.Context, b *model.Bitacora) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bitacoraRepo) CreateTx(tx *gorm.DB, b *model.Bitacora) error {
	return tx.Create(b).Error
}

// List returns audit rows newest-first with the credential and operator
// preloaded, so the response can show the credential's current estado.
func (r *bitacoraRepo) List(ctx context.Context, filter dto.BitacoraFilter) ([]model.Bitacora, int64, error) {
	var entradas []model.Bitacora
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Bitacora{})

	if filter.Accion != "" {
		q = q.Where("accion = ?", filter.Accion)
	}
	if filter.Desde != "" {
		if desde, err := time.Parse("2006-01-02", filter.Desde); err == nil {
			q = q.Where("fecha >= ?", desde)
		}
	}
	if filter.Hasta != "" {
		if hasta, err := time.Parse("2006-01-02", filter.Hasta); err == nil {
			// Inclusive: la fecha tope abarca todo el día.
			q = q.Where("fecha < ?", hasta.AddDate(0, 0, 1))
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Credencial").Preload("Usuario").
		Order("fecha DESC").Limit(filter.Limit).Offset(offset).Find(&entradas).Error
	return entradas, total, err
}
