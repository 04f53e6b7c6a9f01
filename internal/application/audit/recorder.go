// Package audit registra y consulta el historial de actividades.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/logger"
	"github.com/jhoicas/caixa-api/pkg/textutil"
)

// Recorder escribe entradas del historial. Los casos de uso lo invocan
// DESPUÉS de confirmar la mutación: una operación fallida no deja entrada.
type Recorder struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.ActivityLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log.Component("audit")}
}

// Record agrega una entrada inmutable. Un fallo al escribir el historial no
// revierte la operación ya confirmada; se registra en el log de proceso.
func (r *Recorder) Record(actorID, actorName, action, description string, details map[string]any) {
	var payload json.RawMessage
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			payload = b
		}
	}
	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      actorID,
		UserName:    actorName,
		Action:      action,
		Description: description,
		Details:     payload,
		CreatedAt:   time.Now(),
	}
	if err := r.repo.Create(entry); err != nil {
		r.log.Error().Err(err).
			Str("action", action).
			Str("actor", actorName).
			Msg("no se pudo escribir el historial de actividades")
	}
}

// QueryUseCase lectura del historial (solo admin; la matriz lo garantiza en
// el middleware).
type QueryUseCase struct {
	repo repository.ActivityLogRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.ActivityLogRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List filtra por rango de fechas inclusivo, substring del nombre del actor
// (insensible a mayúsculas y acentos) y tipo de acción exacto; más
// recientes primero.
func (uc *QueryUseCase) List(start, end *time.Time, userName, action string) ([]dto.ActivityLogResponse, error) {
	entries, err := uc.repo.List(start, end, action)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		if userName != "" && !textutil.ContainsFold(e.UserName, userName) {
			continue
		}
		out = append(out, dto.ActivityLogResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			UserName:    e.UserName,
			Action:      e.Action,
			Description: e.Description,
			Details:     e.Details,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}
