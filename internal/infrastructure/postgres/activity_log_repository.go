package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre
// PostgreSQL. Solo INSERT y SELECT: el historial es inmutable.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create persiste una entrada del historial.
func (r *ActivityLogRepo) Create(log *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, user_name, action, description, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	var details any
	if len(log.Details) > 0 {
		details = []byte(log.Details)
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.UserName, log.Action, log.Description, details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List filtra por rango de fechas inclusivo y acción exacta, más recientes primero.
func (r *ActivityLogRepo) List(start, end *time.Time, action string) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, user_name, action, description, details, created_at
		FROM activity_logs
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		  AND ($3 = '' OR action = $3)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, start, end, action)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Description, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		e.Details = details
		list = append(list, &e)
	}
	return list, rows.Err()
}
