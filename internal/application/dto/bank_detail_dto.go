package dto

import "time"

// CreateBankDetailRequest body para POST /bank-details.
type CreateBankDetailRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=120"`
	AccountName   string `json:"account_name" validate:"required,max=200"`
	AccountNumber string `json:"account_number" validate:"required,max=40"`
	IBAN          string `json:"iban,omitempty" validate:"omitempty,alphanum,min=15,max=34"`
	SwiftCode     string `json:"swift_code,omitempty" validate:"omitempty,alphanum,min=8,max=11"`
	IsDefault     bool   `json:"is_default"`
}

// UpdateBankDetailRequest body para PUT /bank-details/:id.
type UpdateBankDetailRequest struct {
	BankName      *string `json:"bank_name" validate:"omitempty,max=120"`
	AccountName   *string `json:"account_name" validate:"omitempty,max=200"`
	AccountNumber *string `json:"account_number" validate:"omitempty,max=40"`
	IBAN          *string `json:"iban" validate:"omitempty,alphanum,min=15,max=34"`
	SwiftCode     *string `json:"swift_code" validate:"omitempty,alphanum,min=8,max=11"`
}

// BankDetailResponse cuenta bancaria en respuestas.
type BankDetailResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	BankName      string    `json:"bank_name"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	IBAN          string    `json:"iban,omitempty"`
	SwiftCode     string    `json:"swift_code,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
