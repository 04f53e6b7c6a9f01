package http

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// queryDate parsea un query param de fecha (YYYY-MM-DD). Nil si está ausente.
func queryDate(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s debe tener formato YYYY-MM-DD", name)
	}
	return &t, nil
}

// queryDateEnd parsea la fecha de fin y la lleva al último instante del día
// para que el rango sea inclusivo.
func queryDateEnd(raw, name string) (*time.Time, error) {
	t, err := queryDate(raw, name)
	if err != nil || t == nil {
		return t, err
	}
	end := t.AddDate(0, 0, 1).Add(-time.Second)
	return &end, nil
}

// queryInt parsea un query param entero opcional. Nil si está ausente.
func queryInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s debe ser un número entero", name)
	}
	return &n, nil
}
