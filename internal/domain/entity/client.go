package entity

import "time"

// Client representa un cliente.
// CPF se guarda en su forma canónica 000.000.000-00 y es único, igual que
// el email. CreatedBy existe solo para trazabilidad, no es frontera de acceso.
type Client struct {
	ID        string
	Name      string
	Email     string
	CPF       string
	Phone     string
	Address   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
