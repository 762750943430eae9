package billing

import (
	"context"
	"fmt"
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

// sequenceWidth dígitos del consecutivo generado (INV + 000042).
const sequenceWidth = 6

var hundred = decimal.NewFromInt(100)

// InvoiceUseCase calcula, crea y gestiona el ciclo de vida de las facturas.
type InvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	bankRepo     repository.BankDetailRepository
	invoiceRepo  repository.InvoiceRepository
	recorder     Recorder
}

// NewInvoiceUseCase construye el caso de uso. recorder puede ser nil.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	bankRepo repository.BankDetailRepository,
	invoiceRepo repository.InvoiceRepository,
	recorder Recorder,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		bankRepo:     bankRepo,
		invoiceRepo:  invoiceRepo,
		recorder:     recorder,
	}
}

// resolvedLine línea con los valores de catálogo ya aplicados.
type resolvedLine struct {
	productID   string
	description string
	item        invoicing.LineItem
}

// Calculate vista previa de la factura: resuelve precios y tasas del catálogo y ejecuta el
// cálculo sin persistir nada. Es la ruta que el formulario llama en cada edición, así que
// montos no numéricos cuentan como cero en lugar de fallar.
func (uc *InvoiceUseCase) Calculate(ctx context.Context, companyID string, in dto.CalculateInvoiceRequest) (*dto.CalculationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(ctx, company, in.Items)
	if err != nil {
		return nil, err
	}
	items := make([]invoicing.LineItem, len(lines))
	for i, l := range lines {
		items[i] = l.item
	}
	result := invoicing.Calculate(items)
	if uc.recorder != nil {
		uc.recorder.InvoiceCalculated(len(items))
	}

	resp := &dto.CalculationResponse{
		Lines:  make([]dto.CalculatedLineResponse, 0, len(lines)),
		Totals: result.Totals,
	}
	for i, l := range lines {
		resp.Lines = append(resp.Lines, dto.CalculatedLineResponse{
			Position:        i + 1,
			ProductID:       l.productID,
			Description:     l.description,
			Quantity:        l.item.Quantity.Decimal,
			UnitPrice:       l.item.UnitRate.Decimal,
			DiscountType:    l.item.DiscountType,
			DiscountValue:   l.item.DiscountValue.Decimal,
			TaxRate:         l.item.TaxRatePercent.Decimal,
			LineCalculation: result.Lines[i],
		})
	}
	return resp, nil
}

// CreateInvoice valida cliente y cuenta bancaria, calcula líneas y totales, asigna el número
// (prefijo + consecutivo si no se envía) y guarda cabecera y detalles en una sola transacción.
// La factura nace en estado DRAFT.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.checkReferences(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	date, dueDate, err := parseDates(in.Date, in.DueDate, time.Now())
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(ctx, company, in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkPersistable(lines); err != nil {
		return nil, err
	}

	prefix := strings.TrimSpace(in.Prefix)
	if prefix == "" {
		prefix = company.InvoicePrefix
	}
	now := time.Now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   customer.ID,
		BankDetailID: in.BankDetailID,
		Prefix:       prefix,
		Number:       strings.TrimSpace(in.Number),
		Date:         date,
		DueDate:      dueDate,
		Status:       entity.InvoiceStatusDraft,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	details := buildDetails(inv, lines)

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if inv.Number == "" {
			seq, err := invoiceRepo.NextSequence(ctx, companyID, prefix)
			if err != nil {
				return fmt.Errorf("consecutivo de factura: %w", err)
			}
			inv.Number = fmt.Sprintf("%0*d", sequenceWidth, seq)
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, d := range details {
			if err := invoiceRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.InvoiceCreated(companyID, inv.GrandTotal)
	}
	return toInvoiceResponse(inv, customer.Name, details), nil
}

// UpdateInvoice reemplaza cabecera y líneas de una factura en DRAFT y recalcula los totales.
// Prefijo y número se conservan salvo que se envíen.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, companyID, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !inv.Editable() {
		return nil, domain.ErrNotEditable
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.checkReferences(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	date, dueDate, err := parseDates(in.Date, in.DueDate, inv.Date)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolveLines(ctx, company, in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkPersistable(lines); err != nil {
		return nil, err
	}

	inv.CustomerID = customer.ID
	inv.BankDetailID = in.BankDetailID
	inv.Date = date
	inv.DueDate = dueDate
	inv.Notes = in.Notes
	if p := strings.TrimSpace(in.Prefix); p != "" {
		inv.Prefix = p
	}
	if n := strings.TrimSpace(in.Number); n != "" {
		inv.Number = n
	}
	inv.UpdatedAt = time.Now()
	details := buildDetails(inv, lines)

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.DeleteDetails(ctx, inv.ID); err != nil {
			return err
		}
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		for _, d := range details {
			if err := invoiceRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customer.Name, details), nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName, details), nil
}

// ListInvoices lista facturas de la empresa (sin detalle).
// Filtros: status, customer_id, rango de fechas y búsqueda por número.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string, q dto.ListQuery) (*dto.Page[dto.InvoiceResponse], error) {
	f, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	if f.Status != "" && !entity.IsInvoiceStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	list, total, err := uc.invoiceRepo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, "", nil))
	}
	return dto.NewPage(items, f, total), nil
}

// DeleteInvoice elimina una factura en DRAFT junto con sus líneas.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, companyID, id string) error {
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !inv.Editable() {
		return domain.ErrNotEditable
	}
	return uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.DeleteDetails(ctx, id); err != nil {
			return err
		}
		return invoiceRepo.Delete(ctx, id)
	})
}

// ChangeStatus aplica una transición de estado (DRAFT→ISSUED|CANCELLED, ISSUED→PAID|CANCELLED).
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, companyID, id string, in dto.ChangeInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	from := inv.Status
	if !entity.CanTransition(from, in.Status) {
		return nil, domain.ErrInvalidTransition
	}
	if in.Status == entity.InvoiceStatusIssued {
		if err := uc.verifyStored(ctx, inv); err != nil {
			return nil, err
		}
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, from, in.Status); err != nil {
		return nil, err
	}
	inv.Status = in.Status
	inv.UpdatedAt = time.Now()
	if uc.recorder != nil {
		uc.recorder.InvoiceStatusChanged(from, in.Status)
	}
	return toInvoiceResponse(inv, "", nil), nil
}

// verifyStored recalcula las líneas guardadas antes de emitir; una factura emitida
// queda con los totales congelados.
func (uc *InvoiceUseCase) verifyStored(ctx context.Context, inv *entity.Invoice) error {
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(ctx, inv.ID)
	if err != nil {
		return err
	}
	items := make([]invoicing.LineItem, len(details))
	stored := make([]invoicing.LineCalculation, len(details))
	for i, d := range details {
		items[i] = invoicing.LineItem{
			Quantity:       invoicing.NewAmount(d.Quantity),
			UnitRate:       invoicing.NewAmount(d.UnitPrice),
			DiscountValue:  invoicing.NewAmount(d.DiscountValue),
			DiscountType:   invoicing.ParseDiscountType(d.DiscountType),
			TaxRatePercent: invoicing.NewAmount(d.TaxRate),
		}
		stored[i] = invoicing.LineCalculation{
			GrossPrice:     d.GrossPrice,
			DiscountAmount: d.DiscountAmount,
			TaxableAmount:  d.TaxableAmount,
			TaxAmount:      d.TaxAmount,
			LineTotal:      d.LineTotal,
		}
	}
	header := invoicing.InvoiceTotals{
		SubTotal:           inv.SubTotal,
		TotalDiscount:      inv.TotalDiscount,
		TotalTaxableAmount: inv.TotalTaxable,
		TotalTaxAmount:     inv.TotalTax,
		TotalInvoiceAmount: inv.GrandTotal,
	}
	if err := invoicing.VerifyTotals(header, items, stored); err != nil {
		return fmt.Errorf("factura %s%s: %w", inv.Prefix, inv.Number, err)
	}
	return nil
}

func (uc *InvoiceUseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (uc *InvoiceUseCase) get(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// checkReferences valida que cliente y cuenta bancaria existan y sean de la empresa.
func (uc *InvoiceUseCase) checkReferences(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.BankDetailID != "" {
		bank, err := uc.bankRepo.GetByID(ctx, in.BankDetailID)
		if err != nil {
			return nil, err
		}
		if bank == nil {
			return nil, domain.ErrNotFound
		}
		if bank.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}
	return customer, nil
}

// resolveLines completa cada línea con los datos del catálogo:
// precio 0 con producto => precio del producto (sin IVA si se guardó con IVA incluido);
// tasa null => tasa del producto o, sin producto, la tasa por defecto de la empresa.
func (uc *InvoiceUseCase) resolveLines(ctx context.Context, company *entity.Company, in []dto.InvoiceLineRequest) ([]resolvedLine, error) {
	products := make(map[string]*entity.Product)
	out := make([]resolvedLine, 0, len(in))
	for _, req := range in {
		price := req.UnitPrice.Decimal
		taxRate := company.DefaultTaxRate
		description := strings.TrimSpace(req.Description)

		if req.ProductID != "" {
			product, ok := products[req.ProductID]
			if !ok {
				p, err := uc.productRepo.GetByID(ctx, req.ProductID)
				if err != nil {
					return nil, err
				}
				if p == nil {
					return nil, domain.ErrNotFound
				}
				if p.CompanyID != company.ID {
					return nil, domain.ErrForbidden
				}
				products[req.ProductID] = p
				product = p
			}
			taxRate = product.TaxRate
			if price.IsZero() {
				price = product.Price
				if product.PriceIncludesVAT {
					price = invoicing.ExclusiveFromInclusive(product.Price, product.TaxRate)
				}
			}
			if description == "" {
				description = product.Name
			}
		}
		if req.TaxRate != nil {
			taxRate = req.TaxRate.Decimal
		}

		out = append(out, resolvedLine{
			productID:   req.ProductID,
			description: description,
			item: invoicing.LineItem{
				Quantity:       req.Quantity,
				UnitRate:       invoicing.NewAmount(price),
				DiscountValue:  req.DiscountValue,
				DiscountType:   invoicing.ParseDiscountType(string(req.DiscountType)),
				TaxRatePercent: invoicing.NewAmount(taxRate),
			},
		})
	}
	return out, nil
}

// checkPersistable reglas para guardar una factura (la vista previa no las aplica):
// cantidad > 0, precio y descuento >= 0, tasa entre 0 y 100.
func checkPersistable(lines []resolvedLine) error {
	var fields []string
	for i, l := range lines {
		if !l.item.Quantity.IsPositive() {
			fields = append(fields, fmt.Sprintf("items[%d].quantity:gt", i))
		}
		if l.item.UnitRate.IsNegative() {
			fields = append(fields, fmt.Sprintf("items[%d].unit_price:gte", i))
		}
		if l.item.DiscountValue.IsNegative() {
			fields = append(fields, fmt.Sprintf("items[%d].discount_value:gte", i))
		}
		if r := l.item.TaxRatePercent.Decimal; r.IsNegative() || r.GreaterThan(hundred) {
			fields = append(fields, fmt.Sprintf("items[%d].tax_rate:range", i))
		}
	}
	if len(fields) > 0 {
		return &dto.ValidationError{Fields: fields}
	}
	return nil
}

// parseDates interpreta fecha y vencimiento (YYYY-MM-DD). Sin fecha se usa def.
// El vencimiento no puede ser anterior a la fecha de la factura.
func parseDates(dateStr, dueStr string, def time.Time) (time.Time, *time.Time, error) {
	date := def
	if dateStr != "" {
		d, err := time.Parse(dto.DateLayout, dateStr)
		if err != nil {
			return time.Time{}, nil, domain.ErrInvalidInput
		}
		date = d
	}
	if dueStr == "" {
		return date, nil, nil
	}
	due, err := time.Parse(dto.DateLayout, dueStr)
	if err != nil {
		return time.Time{}, nil, domain.ErrInvalidInput
	}
	if due.Before(date.Truncate(24 * time.Hour)) {
		return time.Time{}, nil, &dto.ValidationError{Fields: []string{"due_date:gtefield"}}
	}
	return date, &due, nil
}

// buildDetails ejecuta el cálculo, arma los detalles y copia los totales en la cabecera.
func buildDetails(inv *entity.Invoice, lines []resolvedLine) []*entity.InvoiceDetail {
	items := make([]invoicing.LineItem, len(lines))
	for i, l := range lines {
		items[i] = l.item
	}
	result := invoicing.Calculate(items)

	inv.SubTotal = result.Totals.SubTotal
	inv.TotalDiscount = result.Totals.TotalDiscount
	inv.TotalTaxable = result.Totals.TotalTaxableAmount
	inv.TotalTax = result.Totals.TotalTaxAmount
	inv.GrandTotal = result.Totals.TotalInvoiceAmount

	details := make([]*entity.InvoiceDetail, 0, len(lines))
	for i, l := range lines {
		calc := result.Lines[i]
		details = append(details, &entity.InvoiceDetail{
			ID:             uuid.New().String(),
			InvoiceID:      inv.ID,
			Position:       i + 1,
			ProductID:      l.productID,
			Description:    l.description,
			Quantity:       l.item.Quantity.Decimal,
			UnitPrice:      l.item.UnitRate.Decimal,
			DiscountType:   string(l.item.DiscountType),
			DiscountValue:  l.item.DiscountValue.Decimal,
			TaxRate:        l.item.TaxRatePercent.Decimal,
			GrossPrice:     calc.GrossPrice,
			DiscountAmount: calc.DiscountAmount,
			TaxableAmount:  calc.TaxableAmount,
			TaxAmount:      calc.TaxAmount,
			LineTotal:      calc.LineTotal,
		})
	}
	return details
}

func toInvoiceResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		BankDetailID:  inv.BankDetailID,
		Prefix:        inv.Prefix,
		Number:        inv.Number,
		Date:          inv.Date.Format(dto.DateLayout),
		Status:        inv.Status,
		Notes:         inv.Notes,
		SubTotal:      inv.SubTotal,
		TotalDiscount: inv.TotalDiscount,
		TotalTaxable:  inv.TotalTaxable,
		TotalTax:      inv.TotalTax,
		GrandTotal:    inv.GrandTotal,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format(dto.DateLayout)
	}
	if len(details) > 0 {
		resp.Details = make([]dto.InvoiceDetailResponse, 0, len(details))
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:             d.ID,
			Position:       d.Position,
			ProductID:      d.ProductID,
			Description:    d.Description,
			Quantity:       d.Quantity,
			UnitPrice:      d.UnitPrice,
			DiscountType:   d.DiscountType,
			DiscountValue:  d.DiscountValue,
			TaxRate:        d.TaxRate,
			GrossPrice:     d.GrossPrice,
			DiscountAmount: d.DiscountAmount,
			TaxableAmount:  d.TaxableAmount,
			TaxAmount:      d.TaxAmount,
			LineTotal:      d.LineTotal,
		})
	}
	return resp
}
