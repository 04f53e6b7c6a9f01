package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	appauth "github.com/jhoicas/caixa-api/internal/application/auth"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios. La matriz de permisos ya se consultó en el
// middleware para la acción genérica; las reglas que dependen del rol del
// usuario objetivo (manager no toca admin/manager) se reevalúan aquí con el
// target resuelto.
type UserUseCase struct {
	repo         repository.UserRepository
	recorder     *audit.Recorder
	seedUsername string
}

// NewUserUseCase construye el caso de uso. seedUsername es el username del
// administrador sembrado en el arranque; esa cuenta no puede eliminarse.
func NewUserUseCase(repo repository.UserRepository, recorder *audit.Recorder, seedUsername string) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder, seedUsername: seedUsername}
}

// Create crea un usuario nuevo.
func (uc *UserUseCase) Create(actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor.Actor(), authz.ActionUserCreate, &authz.Target{Role: role}); err != nil {
		return nil, err
	}
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username y email son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  toGrants(in.Permissions),
		Active:       true,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityUserCreated,
		fmt.Sprintf("usuário %s criado com perfil %s", user.Username, user.Role),
		map[string]any{"user_id": user.ID, "role": string(user.Role)})
	resp := appauth.ToUserResponse(user)
	return &resp, nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, appauth.ToUserResponse(u))
	}
	return out, nil
}

// Update edita rol, permisos, email o activación de un usuario.
func (uc *UserUseCase) Update(actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := authz.Authorize(actor.Actor(), authz.ActionUserUpdate,
		&authz.Target{UserID: user.ID, Role: user.Role}); err != nil {
		return nil, err
	}
	if in.Role != nil {
		role, err := authz.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		// El rol destino también está sujeto a la matriz (manager no puede
		// promover a admin/manager).
		if err := authz.Authorize(actor.Actor(), authz.ActionUserUpdate,
			&authz.Target{UserID: user.ID, Role: role}); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Permissions != nil {
		user.Permissions = toGrants(*in.Permissions)
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityUserUpdated,
		fmt.Sprintf("usuário %s atualizado", user.Username),
		map[string]any{"user_id": user.ID})
	resp := appauth.ToUserResponse(user)
	return &resp, nil
}

// ResetPassword reset administrativo: define una contraseña temporal y fuerza
// el cambio en el próximo login.
func (uc *UserUseCase) ResetPassword(actor *entity.User, id string, in dto.ResetPasswordRequest) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := authz.Authorize(actor.Actor(), authz.ActionUserResetPassword,
		&authz.Target{UserID: user.ID, Role: user.Role}); err != nil {
		return err
	}
	if len(in.NewPassword) < 6 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.RequirePasswordChange = true
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityPasswordReset,
		fmt.Sprintf("senha do usuário %s redefinida", user.Username),
		map[string]any{"user_id": user.ID})
	return nil
}

// Delete elimina un usuario definitivamente (solo admin; la cuenta admin
// sembrada es intocable).
func (uc *UserUseCase) Delete(actor *entity.User, id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := authz.Authorize(actor.Actor(), authz.ActionUserDelete,
		&authz.Target{UserID: user.ID, Role: user.Role}); err != nil {
		return err
	}
	if uc.seedUsername != "" && user.Username == uc.seedUsername {
		return fmt.Errorf("%w: a conta admin principal não pode ser removida", domain.ErrBusinessRule)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityUserDeleted,
		fmt.Sprintf("usuário %s removido", user.Username),
		map[string]any{"user_id": user.ID})
	return nil
}

func toGrants(perms map[string]bool) authz.Grants {
	if len(perms) == 0 {
		return nil
	}
	grants := make(authz.Grants, len(perms))
	for k, v := range perms {
		grants[authz.Capability(k)] = v
	}
	return grants
}
