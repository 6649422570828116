package dto

import "time"

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type BitacoraFilter struct {
	Accion string `form:"accion" validate:"omitempty,oneof=emision renovacion deshabilitacion habilitacion"`
	Desde  string `form:"desde"  validate:"omitempty,datetime=2006-01-02"`
	Hasta  string `form:"hasta"  validate:"omitempty,datetime=2006-01-02"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// BitacoraEntryResponse joins each audit row with the credential's current
// state, so the listing always shows what the credential is now, not what it
// was when the action happened.
type BitacoraEntryResponse struct {
	ID             int       `json:"id"`
	Fecha          time.Time `json:"fecha"`
	Accion         string    `json:"accion"`
	CredencialID   int       `json:"credencial_id"`
	NombreCompleto string    `json:"nombre_completo"`
	EstadoActual   string    `json:"estado_actual"`
	Usuario        string    `json:"usuario"`
}

type BitacoraListResponse struct {
	Data       []BitacoraEntryResponse `json:"data"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}
