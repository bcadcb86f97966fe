package models

import (
	"time"
)

// Usuario is an account in the institutional user store. CodigoUsuario is
// only unique within an institution, so lookups always scope by both codes.
type Usuario struct {
	Cedula              string `gorm:"primarykey;column:cedula"`
	CodigoUsuario       string `gorm:"column:codigo_usuario;not null;uniqueIndex:idx_usuario_institucion"`
	CodigoInstitucion   string `gorm:"column:codigo_institucion;not null;uniqueIndex:idx_usuario_institucion"`
	Nombres             string
	Apellidos           string
	Email               string `gorm:"unique;not null"`
	Telefono            string
	PasswordHash        string `gorm:"not null"`
	DebeCambiarPassword bool   `gorm:"default:false"`
	Estado              bool   `gorm:"default:true"`
	IntentosFallidos    int    `gorm:"default:0"`
	BloqueadoHasta      *time.Time
	UltimoAcceso        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Usuario) TableName() string {
	return "usuarios"
}

// Bloqueado reports whether the timed lockout is still in effect.
func (u *Usuario) Bloqueado(now time.Time) bool {
	return u.BloqueadoHasta != nil && now.Before(*u.BloqueadoHasta)
}
