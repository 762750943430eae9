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
	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

const defaultUnitMeasure = "UNIT"

// ProductUseCase casos de uso CRUD para el catálogo de ítems facturables.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo ítem. El SKU es único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() || !validTaxRate(in.TaxRate) {
		return nil, domain.ErrInvalidInput
	}
	sku := strings.TrimSpace(in.SKU)
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := strings.TrimSpace(in.UnitMeasure)
	if unit == "" {
		unit = defaultUnitMeasure
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		SKU:              sku,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Price:            in.Price,
		PriceIncludesVAT: in.PriceIncludesVAT,
		TaxRate:          in.TaxRate,
		UnitMeasure:      unit,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un ítem de la empresa por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un ítem. El SKU no se modifica.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.PriceIncludesVAT != nil {
		product.PriceIncludesVAT = *in.PriceIncludesVAT
	}
	if in.TaxRate != nil {
		if !validTaxRate(*in.TaxRate) {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	if in.UnitMeasure != nil && strings.TrimSpace(*in.UnitMeasure) != "" {
		product.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista ítems por empresa (búsqueda por SKU o nombre, filtro status=active|inactive).
func (uc *ProductUseCase) List(ctx context.Context, companyID string, q dto.ListQuery) (*dto.Page[dto.ProductResponse], error) {
	f, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return dto.NewPage(items, f, total), nil
}

// Delete elimina un ítem. Si está referenciado por facturas devuelve domain.ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// NetPrice precio sin IVA del ítem.
func NetPrice(p *entity.Product) decimal.Decimal {
	if p.PriceIncludesVAT {
		return invoicing.ExclusiveFromInclusive(p.Price, p.TaxRate)
	}
	return p.Price
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		PriceIncludesVAT: p.PriceIncludesVAT,
		NetPrice:         NetPrice(p),
		TaxRate:          p.TaxRate,
		UnitMeasure:      p.UnitMeasure,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
