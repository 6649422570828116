package model

import (
	"time"
)

// Acciones registradas en la bitácora.
const (
	AccionEmision         = "emision"
	AccionRenovacion      = "renovacion"
	AccionDeshabilitacion = "deshabilitacion"
	AccionHabilitacion    = "habilitacion"
)

// Bitacora is the append-only audit trail: one row per credential lifecycle
// action, attributed to the operator that performed it.
type Bitacora struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	Fecha        time.Time `gorm:"index;not null"`
	Accion       string    `gorm:"type:varchar(20);not null"`
	CredencialID int       `gorm:"index;not null"`
	UsuarioID    int       `gorm:"index;not null"`

	Credencial *Credencial `gorm:"foreignKey:CredencialID"`
	Usuario    *Usuario    `gorm:"foreignKey:UsuarioID"`
}

func (Bitacora) TableName() string { return "bitacora" }
