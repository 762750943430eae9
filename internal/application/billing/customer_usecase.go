package billing

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

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El número de IVA, si viene, es único por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	taxID := strings.TrimSpace(in.TaxID)
	if taxID != "" {
		existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		TaxID:     taxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza los campos enviados del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	customer, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.TaxID != nil {
		taxID := strings.TrimSpace(*in.TaxID)
		if taxID != "" && taxID != customer.TaxID {
			existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != customer.ID {
				return nil, domain.ErrDuplicate
			}
		}
		customer.TaxID = taxID
	}
	if in.Name != nil {
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa (búsqueda por nombre, NIT o email).
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, q dto.ListQuery) (*dto.Page[dto.CustomerResponse], error) {
	f, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return dto.NewPage(items, f, total), nil
}

// Delete elimina el cliente. Con facturas asociadas devuelve domain.ErrConflict.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) get(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
