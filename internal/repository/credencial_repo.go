package repository

import (
	"context"
	"strconv"

	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/model"

	"gorm.io/gorm"
)

// CredencialRepository defines the data access contract for credentials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type CredencialRepository interface {
	Create(ctx context.Context, c *model.Credencial) error
	FindByID(ctx context.Context, id int) (*model.Credencial, error)
	Search(ctx context.Context, filter dto.CredencialFilter) ([]model.Credencial, int64, error)
	Update(ctx context.Context, c *model.Credencial) error
	UpdateEstado(ctx context.Context, id int, estado string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type credencialRepo struct{ db *gorm.DB }

func NewCredencialRepository(db *gorm.DB) CredencialRepository { return &credencialRepo{db: db} }

func (r *credencialRepo) Create(ctx context.Context, c *model.Credencial) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *credencialRepo) FindByID(ctx context.Context, id int) (*model.Credencial, error) {
	var c model.Credencial
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

// Search matches the term against the exact numeric id, or the name and
// CURP (partial, case-insensitive). Disabled credentials are included: the
// operator needs to find them to re-enable them.
func (r *credencialRepo) Search(ctx context.Context, filter dto.CredencialFilter) ([]model.Credencial, int64, error) {
	var credenciales []model.Credencial
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Credencial{})

	if filter.Term != "" {
		if id, err := strconv.Atoi(filter.Term); err == nil {
			q = q.Where("id = ?", id)
		} else {
			pat := "%" + filter.Term + "%"
			q = q.Where("nombre_completo ILIKE ? OR curp ILIKE ?", pat, pat)
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre_completo ASC").Limit(filter.Limit).Offset(offset).Find(&credenciales).Error
	return credenciales, total, err
}

func (r *credencialRepo) Update(ctx context.Context, c *model.Credencial) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *credencialRepo) UpdateEstado(ctx context.Context, id int, estado string) error {
	res := r.db.WithContext(ctx).Model(&model.Credencial{}).Where("id = ?", id).Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *credencialRepo) DB() *gorm.DB { return r.db }
