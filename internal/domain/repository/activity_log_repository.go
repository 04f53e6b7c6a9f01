package repository

import (
	"time"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// ActivityLogRepository define el puerto del historial de actividades.
// Solo existe inserción y lectura: las entradas nunca se actualizan ni se
// eliminan.
type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	// List filtra por rango de fechas inclusivo y tipo de acción exacto,
	// más recientes primero. El filtro por nombre de actor se aplica en la
	// capa de aplicación (búsqueda insensible a mayúsculas y acentos).
	List(start, end *time.Time, action string) ([]*entity.ActivityLog, error)
}
