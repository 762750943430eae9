package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// Límites de paginación para listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListQuery parámetros de listado: ?limit=&offset=&q=&sort=&order=&status=&customer_id=&from=&to=
type ListQuery struct {
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
	Search     string `query:"q"`
	Sort       string `query:"sort"`
	Order      string `query:"order"`
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`   // YYYY-MM-DD, inclusivo
}

// DefaultPage aplica valores por defecto y recorta Limit/Offset a rangos válidos.
func (q *ListQuery) DefaultPage() {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ToFilter normaliza la consulta y la convierte en el filtro del repositorio.
// Fechas mal formadas o un rango invertido devuelven domain.ErrInvalidInput.
func (q ListQuery) ToFilter() (repository.ListFilter, error) {
	q.DefaultPage()
	f := repository.ListFilter{
		Search:     strings.TrimSpace(q.Search),
		Status:     strings.ToUpper(strings.TrimSpace(q.Status)),
		CustomerID: strings.TrimSpace(q.CustomerID),
		SortBy:     strings.ToLower(strings.TrimSpace(q.Sort)),
		SortDesc:   strings.EqualFold(strings.TrimSpace(q.Order), "desc"),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if f.CustomerID != "" {
		if _, err := uuid.Parse(f.CustomerID); err != nil {
			return f, &ValidationError{Fields: []string{"customer_id:uuid"}}
		}
	}
	if q.From != "" {
		from, err := time.Parse(DateLayout, q.From)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.DateFrom = &from
	}
	if q.To != "" {
		to, err := time.Parse(DateLayout, q.To)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		// inclusivo: hasta el final del día
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

// DateLayout formato de fecha usado en la API.
const DateLayout = "2006-01-02"

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Page respuesta paginada genérica.
type Page[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewPage construye la página a partir de los ítems ya convertidos.
func NewPage[T any](items []T, f repository.ListFilter, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items: items,
		Page:  PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}
