package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// BankDetailUseCase casos de uso para las cuentas bancarias del perfil de negocio.
type BankDetailUseCase struct {
	repo     repository.BankDetailRepository
	txRunner BankDetailTxRunner
}

// NewBankDetailUseCase construye el caso de uso. Los cambios de cuenta por defecto pasan por txRunner.
func NewBankDetailUseCase(repo repository.BankDetailRepository, txRunner BankDetailTxRunner) *BankDetailUseCase {
	return &BankDetailUseCase{repo: repo, txRunner: txRunner}
}

// Create registra una cuenta. Si IsDefault, desmarca la anterior cuenta por defecto.
// La primera cuenta de la empresa queda siempre como cuenta por defecto.
func (uc *BankDetailUseCase) Create(ctx context.Context, companyID string, in dto.CreateBankDetailRequest) (*dto.BankDetailResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	bank := &entity.BankDetail{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		BankName:      strings.TrimSpace(in.BankName),
		AccountName:   strings.TrimSpace(in.AccountName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		IBAN:          strings.ToUpper(in.IBAN),
		SwiftCode:     strings.ToUpper(in.SwiftCode),
		IsDefault:     in.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.RunBankDetail(ctx, func(repo repository.BankDetailRepository) error {
		if !bank.IsDefault {
			_, total, err := repo.List(ctx, companyID, repository.ListFilter{Limit: 1})
			if err != nil {
				return err
			}
			bank.IsDefault = total == 0
		} else if err := repo.ClearDefault(ctx, companyID); err != nil {
			return err
		}
		return repo.Create(ctx, bank)
	})
	if err != nil {
		return nil, err
	}
	return toBankDetailResponse(bank), nil
}

// GetByID obtiene una cuenta de la empresa.
func (uc *BankDetailUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.BankDetailResponse, error) {
	bank, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toBankDetailResponse(bank), nil
}

// Update modifica los datos de la cuenta.
func (uc *BankDetailUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateBankDetailRequest) (*dto.BankDetailResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	bank, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.BankName != nil {
		bank.BankName = strings.TrimSpace(*in.BankName)
	}
	if in.AccountName != nil {
		bank.AccountName = strings.TrimSpace(*in.AccountName)
	}
	if in.AccountNumber != nil {
		bank.AccountNumber = strings.TrimSpace(*in.AccountNumber)
	}
	if in.IBAN != nil {
		bank.IBAN = strings.ToUpper(*in.IBAN)
	}
	if in.SwiftCode != nil {
		bank.SwiftCode = strings.ToUpper(*in.SwiftCode)
	}
	bank.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, bank); err != nil {
		return nil, err
	}
	return toBankDetailResponse(bank), nil
}

// SetDefault marca la cuenta como la cuenta por defecto de la empresa.
func (uc *BankDetailUseCase) SetDefault(ctx context.Context, companyID, id string) (*dto.BankDetailResponse, error) {
	bank, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if bank.IsDefault {
		return toBankDetailResponse(bank), nil
	}
	err = uc.txRunner.RunBankDetail(ctx, func(repo repository.BankDetailRepository) error {
		if err := repo.ClearDefault(ctx, companyID); err != nil {
			return err
		}
		bank.IsDefault = true
		bank.UpdatedAt = time.Now()
		return repo.Update(ctx, bank)
	})
	if err != nil {
		return nil, err
	}
	return toBankDetailResponse(bank), nil
}

// List lista las cuentas de la empresa (búsqueda por banco, titular o número).
func (uc *BankDetailUseCase) List(ctx context.Context, companyID string, q dto.ListQuery) (*dto.Page[dto.BankDetailResponse], error) {
	f, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BankDetailResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBankDetailResponse(b))
	}
	return dto.NewPage(items, f, total), nil
}

// Delete elimina la cuenta.
func (uc *BankDetailUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BankDetailUseCase) get(ctx context.Context, companyID, id string) (*entity.BankDetail, error) {
	bank, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, domain.ErrNotFound
	}
	if bank.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return bank, nil
}

func toBankDetailResponse(b *entity.BankDetail) *dto.BankDetailResponse {
	return &dto.BankDetailResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		BankName:      b.BankName,
		AccountName:   b.AccountName,
		AccountNumber: b.AccountNumber,
		IBAN:          b.IBAN,
		SwiftCode:     b.SwiftCode,
		IsDefault:     b.IsDefault,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
