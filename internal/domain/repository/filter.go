package repository

import "time"

// ListFilter criterios comunes de listado: búsqueda, filtros, orden y paginación.
// Cada repositorio ignora los filtros que no aplican a su entidad.
type ListFilter struct {
	Search     string // búsqueda parcial (nombre, NIT, SKU o número según la entidad)
	Status     string
	CustomerID string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string // columna ya validada contra la lista blanca de la entidad
	SortDesc   bool
	Limit      int
	Offset     int
}
