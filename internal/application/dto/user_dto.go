package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// ChangePasswordRequest autoservicio de contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// UpdateUserRequest edición parcial de usuario (rol, permisos, activación).
type UpdateUserRequest struct {
	Email       *string          `json:"email,omitempty"`
	Role        *string          `json:"role,omitempty"`
	Permissions *map[string]bool `json:"permissions,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ResetPasswordRequest reset administrativo: fuerza cambio en el próximo login.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID                    string          `json:"id"`
	Username              string          `json:"username"`
	Email                 string          `json:"email"`
	Role                  string          `json:"role"`
	Permissions           map[string]bool `json:"permissions,omitempty"`
	Active                bool            `json:"active"`
	RequirePasswordChange bool            `json:"require_password_change"`
	CreatedAt             time.Time       `json:"created_at"`
}
