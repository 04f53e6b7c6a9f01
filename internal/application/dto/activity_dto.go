package dto

import (
	"encoding/json"
	"time"
)

// ActivityLogResponse entrada del historial de actividades.
type ActivityLogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	Action      string          `json:"activity_type"`
	Description string          `json:"description"`
	Details     json.RawMessage `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
