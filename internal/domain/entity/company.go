package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un perfil de negocio.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

// Company representa el perfil de negocio que emite las facturas (tenant del sistema).
type Company struct {
	ID             string
	Name           string
	TaxID          string // número de registro de IVA
	Address        string
	Phone          string
	Email          string
	Currency       string          // ISO 4217, ej. SAR, COP, EUR
	InvoicePrefix  string          // prefijo por defecto para la numeración
	DefaultTaxRate decimal.Decimal // porcentaje, ej. 15
	Status         string          // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
