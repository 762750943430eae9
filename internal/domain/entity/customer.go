package entity

import "time"

// Customer representa un cliente del perfil de negocio (facturación).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // número de IVA del cliente; vacío para consumidor final
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
