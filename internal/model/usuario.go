package model

import (
	"time"
)

// Usuario stores operator accounts with role-based access.
// Rol: "usuario" | "admin"
type Usuario struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	Nombre       string `gorm:"not null"`
	Correo       string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'usuario'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
