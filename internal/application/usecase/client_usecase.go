package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/cpf"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo     repository.ClientRepository
	recorder *audit.Recorder
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, recorder *audit.Recorder) *ClientUseCase {
	return &ClientUseCase{repo: repo, recorder: recorder}
}

// Create registra un cliente. El CPF se valida por módulo 11 y se guarda en
// forma canónica; email y CPF son únicos.
func (uc *ClientUseCase) Create(actor *entity.User, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name y email son requeridos", domain.ErrInvalidInput)
	}
	canonical, err := cpf.Format(in.CPF)
	if err != nil {
		return nil, fmt.Errorf("%w: cpf inválido", domain.ErrInvalidInput)
	}
	if existing, err := uc.repo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, err := uc.repo.GetByCPF(canonical); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		CPF:       canonical,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityClientCreated,
		fmt.Sprintf("cliente %s cadastrado", client.Name),
		map[string]any{"client_id": client.ID})
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista todos los clientes.
func (uc *ClientUseCase) List() ([]dto.ClientResponse, error) {
	clients, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update edita los datos de contacto de un cliente. El CPF es inmutable.
func (uc *ClientUseCase) Update(actor *entity.User, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != nil && *in.Email != client.Email {
		if existing, err := uc.repo.GetByEmail(*in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		client.Email = *in.Email
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityClientUpdated,
		fmt.Sprintf("cliente %s atualizado", client.Name),
		map[string]any{"client_id": client.ID})
	return toClientResponse(client), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
