package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La taxonomía separa validación (forma), not-found, regla de negocio
// (transición de estado ilegal) y autorización; el handler HTTP mapea
// cada una a su status code.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el usuario ya existe")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrBusinessRule       = errors.New("operación no permitida por el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
