package repository

import (
	"context"

	"github.com/SistemasCRMC/credenciales/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByCorreo(ctx context.Context, correo string) (*model.Usuario, error)
	FindByID(ctx context.Context, id int) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	SoftDelete(ctx context.Context, id int) error
	Reactivar(ctx context.Context, id int) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByCorreo(ctx context.Context, correo string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(correo) = LOWER(?) AND activo = true", correo).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id int) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) SoftDelete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *usuarioRepo) Reactivar(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", true).Error
}
