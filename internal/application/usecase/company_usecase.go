package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// Valores por defecto de un perfil de negocio nuevo.
const (
	defaultCurrency      = "SAR"
	defaultInvoicePrefix = "INV"
)

var maxTaxRate = decimal.NewFromInt(100)

// CompanyUseCase aplica reglas de negocio para perfiles de negocio (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea un perfil de negocio. Devuelve domain.ErrDuplicate si el número de IVA ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	taxRate := decimal.Zero
	if in.DefaultTaxRate != nil {
		taxRate = *in.DefaultTaxRate
	}
	if !validTaxRate(taxRate) {
		return nil, domain.ErrInvalidInput
	}
	taxID := strings.TrimSpace(in.TaxID)
	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	prefix := strings.TrimSpace(in.InvoicePrefix)
	if prefix == "" {
		prefix = defaultInvoicePrefix
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		TaxID:          taxID,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Currency:       currency,
		InvoicePrefix:  prefix,
		DefaultTaxRate: taxRate,
		Status:         entity.CompanyStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene un perfil de negocio por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Exists indica si el perfil existe; lo usa el middleware de alcance por empresa.
func (uc *CompanyUseCase) Exists(ctx context.Context, id string) (bool, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return company != nil, nil
}

// Update actualiza los campos enviados. El número de IVA no se modifica.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Currency != nil {
		company.Currency = *in.Currency
	}
	if in.InvoicePrefix != nil && strings.TrimSpace(*in.InvoicePrefix) != "" {
		company.InvoicePrefix = strings.TrimSpace(*in.InvoicePrefix)
	}
	if in.DefaultTaxRate != nil {
		if !validTaxRate(*in.DefaultTaxRate) {
			return nil, domain.ErrInvalidInput
		}
		company.DefaultTaxRate = *in.DefaultTaxRate
	}
	if in.Status != nil {
		company.Status = *in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista perfiles de negocio con búsqueda y paginación.
func (uc *CompanyUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.Page[dto.CompanyResponse], error) {
	f, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return dto.NewPage(items, f, total), nil
}

// Delete elimina un perfil de negocio. Falla con domain.ErrConflict si tiene facturas.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// validTaxRate acepta porcentajes entre 0 y 100.
func validTaxRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(maxTaxRate)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Currency:       c.Currency,
		InvoicePrefix:  c.InvoicePrefix,
		DefaultTaxRate: c.DefaultTaxRate,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
