package model

import (
	"time"
)

// Credencial is a persisted member credential. IDs are small sequential
// integers because they are printed on the card face.
// Estado: "emitida" | "renovada" | "deshabilitada"
type Credencial struct {
	ID                 int    `gorm:"primaryKey;autoIncrement"`
	NombreCompleto     string `gorm:"index;not null"`
	Area               string `gorm:"not null"`
	ColorArea          string `gorm:"type:varchar(7);not null"`
	Vigencia           string `gorm:"type:varchar(4);not null"`
	ContactoEmergencia *string
	Parentesco         *string
	TelefonoEmergencia *string `gorm:"type:varchar(10)"`
	TipoSangre         *string `gorm:"type:varchar(3)"`
	Alergias           *string
	CURP               *string `gorm:"column:curp;type:varchar(18)"`
	MiembroDesde       *string `gorm:"type:varchar(4)"`
	// FotografiaURL and QRCodigoURL are server-relative paths under /static.
	FotografiaURL *string
	QRCodigoURL   *string
	Estado        string `gorm:"type:varchar(20);not null;default:'emitida'"`
	// UsuarioID is the operator that issued the credential.
	UsuarioID int `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Credencial) TableName() string { return "credenciales" }
