package service

import (
	"context"
	"errors"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/config"
	"github.com/SistemasCRMC/credenciales/internal/dto"
	"github.com/SistemasCRMC/credenciales/internal/model"
	"github.com/SistemasCRMC/credenciales/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Registro(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ResetPassword(ctx context.Context, id int, password string) error
	DesactivarUsuario(ctx context.Context, id int) error
	ReactivarUsuario(ctx context.Context, id int) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByCorreo(ctx, req.Correo)
	if err != nil {
		return nil, errors.New("credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales inválidas")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        usuarioResponse(user),
	}, nil
}

// Registro creates an operator account. Self-registered accounts always get
// the base role; admins are promoted manually.
func (s *authService) Registro(ctx context.Context, req dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.FindByCorreo(ctx, req.Correo); err == nil {
		return nil, errors.New("el correo ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Correo:       req.Correo,
		PasswordHash: string(hash),
		Rol:          "usuario",
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, id int, password string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

func (s *authService) DesactivarUsuario(ctx context.Context, id int) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id int) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"correo":  user.Correo,
		"rol":     user.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:     u.ID,
		Nombre: u.Nombre,
		Correo: u.Correo,
		Rol:    u.Rol,
		Activo: u.Activo,
	}
}
