package entity

import (
	"time"

	"github.com/jhoicas/caixa-api/internal/domain/authz"
)

// User representa un usuario del sistema.
// Permissions solo se consulta para el rol reception (base fija + grants).
// El usuario admin sembrado en el arranque no puede ser eliminado.
type User struct {
	ID                    string
	Username              string
	Email                 string
	PasswordHash          string // bcrypt, nunca plano en dominio después de persistir
	Role                  authz.Role
	Permissions           authz.Grants
	Active                bool
	RequirePasswordChange bool
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Actor proyecta el usuario a la identidad que consume la matriz de permisos.
func (u *User) Actor() authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role, Grants: u.Permissions}
}
