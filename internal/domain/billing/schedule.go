// Package billing contiene el cálculo puro del plan de parcelas.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/domain"
)

// daysPerInstallment separación entre vencimientos: parcela N vence a
// creación + 30×N días.
const daysPerInstallment = 30

// ScheduleItem una parcela calculada (monto + vencimiento), aún sin persistir.
type ScheduleItem struct {
	Number  int
	Amount  decimal.Decimal
	DueDate time.Time
}

// BuildSchedule calcula las parcelas de una conta.
//
// Política de redondeo: cada parcela recibe total/count truncado a 2
// decimales y la ÚLTIMA absorbe el resto, de modo que la suma de parcelas
// iguala el total exactamente al centavo y ninguna parcela queda negativa
// (ej. 100.00 en 3 → 33.33, 33.33, 33.34). El truncamiento garantiza que el
// resto de la última es siempre >= 0. total debe ser > 0, count >= 1 y el
// cociente truncado al menos un centavo.
func BuildSchedule(total decimal.Decimal, count int, createdAt time.Time) ([]ScheduleItem, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: número de parcelas debe ser >= 1", domain.ErrInvalidInput)
	}
	if !total.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: valor total debe ser mayor que cero", domain.ErrInvalidInput)
	}

	per := total.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
	if per.IsZero() {
		return nil, fmt.Errorf("%w: valor total muito baixo para %d parcelas", domain.ErrInvalidInput, count)
	}
	items := make([]ScheduleItem, count)
	var accumulated decimal.Decimal
	for i := 0; i < count; i++ {
		amount := per
		if i == count-1 {
			amount = total.Sub(accumulated)
		}
		accumulated = accumulated.Add(amount)
		items[i] = ScheduleItem{
			Number:  i + 1,
			Amount:  amount,
			DueDate: createdAt.AddDate(0, 0, daysPerInstallment*(i+1)),
		}
	}
	return items, nil
}

// InstallmentAmount devuelve el valor de referencia por parcela (el que se
// guarda en la conta); las parcelas reales pueden diferir en la última por
// el redondeo.
func InstallmentAmount(total decimal.Decimal, count int) decimal.Decimal {
	if count < 1 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
}
