package entity

import "time"

// BankDetail cuenta bancaria del perfil de negocio que se imprime en la factura para el pago.
// Solo una cuenta por empresa puede estar marcada como IsDefault.
type BankDetail struct {
	ID            string
	CompanyID     string
	BankName      string
	AccountName   string
	AccountNumber string
	IBAN          string
	SwiftCode     string
	IsDefault     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
