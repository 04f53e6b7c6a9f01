// Package auth implementa login y autoservicio de contraseña.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	recorder *audit.Recorder
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, recorder *audit.Recorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, recorder: recorder, jwtCfg: jwtCfg}
}

// Login verifica username/password, rechaza usuarios inactivos y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword autoservicio: verifica la contraseña actual, guarda la nueva
// y limpia el flag de cambio forzado.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 6 {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.RequirePasswordChange = false
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	uc.recorder.Record(user.ID, user.Username, entity.ActivityPasswordChanged,
		"alteração de senha própria", nil)
	return nil
}

// ToUserResponse proyecta un usuario a su representación pública.
func ToUserResponse(u *entity.User) dto.UserResponse {
	perms := make(map[string]bool, len(u.Permissions))
	for k, v := range u.Permissions {
		perms[string(k)] = v
	}
	if len(perms) == 0 {
		perms = nil
	}
	return dto.UserResponse{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		Role:                  string(u.Role),
		Permissions:           perms,
		Active:                u.Active,
		RequirePasswordChange: u.RequirePasswordChange,
		CreatedAt:             u.CreatedAt,
	}
}
