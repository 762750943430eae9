package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear un perfil de negocio.
type CreateCompanyRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	TaxID          string           `json:"tax_id" validate:"required,min=1,max=30"`
	Address        string           `json:"address" validate:"max=300"`
	Phone          string           `json:"phone" validate:"max=30"`
	Email          string           `json:"email" validate:"omitempty,email"`
	Currency       string           `json:"currency" validate:"omitempty,len=3,uppercase"`
	InvoicePrefix  string           `json:"invoice_prefix" validate:"omitempty,max=10"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate"`
}

// UpdateCompanyRequest entrada para actualizar un perfil de negocio (campos opcionales).
type UpdateCompanyRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Address        *string          `json:"address" validate:"omitempty,max=300"`
	Phone          *string          `json:"phone" validate:"omitempty,max=30"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Currency       *string          `json:"currency" validate:"omitempty,len=3,uppercase"`
	InvoicePrefix  *string          `json:"invoice_prefix" validate:"omitempty,max=10"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate"`
	Status         *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CompanyResponse salida de un perfil de negocio.
type CompanyResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Currency       string          `json:"currency"`
	InvoicePrefix  string          `json:"invoice_prefix"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
