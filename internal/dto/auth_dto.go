package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Correo   string `json:"correo"   validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegistroRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Correo   string `json:"correo"   validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	User        UsuarioResponse `json:"user"`
}
