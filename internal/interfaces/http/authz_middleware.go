package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// actorLoader es el contrato mínimo que necesita el middleware para resolver
// el usuario del token. Lo implementa el repositorio de usuarios; el uso de
// interfaz evita acoplar la capa HTTP a postgres.
type actorLoader interface {
	GetByID(id string) (*entity.User, error)
}

// LoadActor resuelve el usuario del token contra la DB en cada request: los
// grants de reception pueden cambiar mientras el token sigue vigente, y un
// usuario desactivado queda fuera de inmediato. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalUserID).
func LoadActor(users actorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		user, err := users.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACTOR_LOOKUP_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "el usuario del token ya no existe",
			})
		}
		if !user.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "INACTIVE_USER",
				Message: "usuário desativado",
			})
		}
		c.Locals(LocalActor, user)
		return c.Next()
	}
}

// RequireAction consulta la matriz de permisos para la acción del endpoint.
// Las reglas que dependen del rol del usuario objetivo se reevalúan en el
// caso de uso con el target resuelto; aquí el target es nil.
func RequireAction(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no resuelto en el contexto",
			})
		}
		if err := authz.Authorize(actor.Actor(), action, nil); err != nil {
			var denied *authz.DeniedError
			if errors.As(err, &denied) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "FORBIDDEN",
					Message: denied.Reason,
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: err.Error(),
			})
		}
		return c.Next()
	}
}
