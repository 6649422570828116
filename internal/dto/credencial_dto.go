package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// GuardarCredencialRequest is the body of both POST /credentials and
// PUT /credentials/:id. Exactly one of FotografiaBase64 (a new inline photo)
// and FotografiaURLCurrent (keep the already-uploaded one) is expected; both
// absent means the credential has no photo.
type GuardarCredencialRequest struct {
	NombreCompleto       string  `json:"nombre_completo" validate:"required,min=1,max=20"`
	Correo               *string `json:"correo"          validate:"omitempty,email"`
	Area                 string  `json:"area"            validate:"required,max=24"`
	ColorArea            string  `json:"color_area"      validate:"required,hexcolor"`
	Vigencia             string  `json:"vigencia"        validate:"required,len=4,numeric"`
	ContactoEmergencia   *string `json:"contacto_emergencia" validate:"omitempty,max=20"`
	Parentesco           *string `json:"parentesco"`
	TelefonoEmergencia   *string `json:"telefono_emergencia" validate:"omitempty,max=10,numeric"`
	TipoSangre           *string `json:"tipo_sangre"     validate:"omitempty,max=3"`
	Alergias             *string `json:"alergias"        validate:"omitempty,max=20"`
	CURP                 *string `json:"curp"            validate:"omitempty,max=18"`
	MiembroDesde         *string `json:"miembro_desde"   validate:"omitempty,len=4,numeric"`
	FotografiaBase64     *string `json:"fotografia_base64"`
	FotografiaURLCurrent *string `json:"fotografia_url_current"`
	// UsuarioID is filled from the JWT claims by the handler, never from
	// the request body.
	UsuarioID int `json:"-"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type CredencialFilter struct {
	// Term matches against the numeric id exactly, or the name and CURP
	// partially and case-insensitively.
	Term  string `form:"term"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CredencialResponse struct {
	ID                 int     `json:"id"`
	NombreCompleto     string  `json:"nombre_completo"`
	Area               string  `json:"area"`
	ColorArea          string  `json:"color_area"`
	Vigencia           string  `json:"vigencia"`
	ContactoEmergencia *string `json:"contacto_emergencia"`
	Parentesco         *string `json:"parentesco"`
	TelefonoEmergencia *string `json:"telefono_emergencia"`
	TipoSangre         *string `json:"tipo_sangre"`
	Alergias           *string `json:"alergias"`
	CURP               *string `json:"curp"`
	MiembroDesde       *string `json:"miembro_desde"`
	FotografiaURL      *string `json:"fotografia_url"`
	QRCodigoURL        *string `json:"qr_codigo_url"`
	Estado             string  `json:"estado"`
}

type CredencialListResponse struct {
	Data       []CredencialResponse `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

// GuardarCredencialResponse answers a successful create or update with the
// references the client needs to keep editing or to print.
type GuardarCredencialResponse struct {
	CredentialID  int     `json:"credentialId"`
	FotografiaURL *string `json:"fotografia_url"`
	QRCodigoURL   *string `json:"qr_codigo_url"`
}

// ImportRowError locates one rejected CSV row. Fila is 1-based and counts
// the header.
type ImportRowError struct {
	Fila   int    `json:"fila"`
	Detail string `json:"detail"`
}

type ImportarCredencialesResponse struct {
	Importadas int              `json:"importadas"`
	Errores    []ImportRowError `json:"errores"`
}

// ValidacionResponse is returned by the public validation endpoint (no auth
// required); the QR on each card points to the page backed by it.
type ValidacionResponse struct {
	Credencial CredencialResponse `json:"credencial"`
	Valida     bool               `json:"valida"`
	Estatus    string             `json:"estatus"` // Vigente | Renovada | Vencida | Deshabilitada
}
