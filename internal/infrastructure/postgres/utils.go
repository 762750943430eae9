package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para traducir errores a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation verifica si el registro sigue referenciado (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

// whereBuilder arma la cláusula WHERE con placeholders numerados ($1, $2...).
type whereBuilder struct {
	conds []string
	args  []any
}

// add agrega una condición; cada %[1]d en cond se reemplaza por el número del argumento.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// search agrega un ILIKE sobre varias columnas con el mismo patrón.
func (w *whereBuilder) search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE $%[1]d"
	}
	w.add("("+strings.Join(parts, " OR ")+")", likePattern(term))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT y OFFSET como argumentos y devuelve el fragmento SQL.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}

// likePattern escapa comodines del término y lo envuelve en %...%.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// orderBy traduce el campo pedido a una columna de la lista blanca; si no está usa def.
// Siempre desempata por id para que la paginación sea estable.
func orderBy(sortBy string, desc bool, allowed map[string]string, def string) string {
	return " ORDER BY " + orderColumns(sortBy, desc, allowed, def)
}

func orderColumns(sortBy string, desc bool, allowed map[string]string, def string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = def
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", col, dir, dir)
}

// countRows cuenta el total cuando la página pedida quedó vacía (COUNT(*) OVER() no devuelve filas).
// Los argumentos de LIMIT/OFFSET ya agregados por page() se descartan.
func countRows(ctx context.Context, q Querier, table string, w whereBuilder) (int, error) {
	args := w.args
	if len(args) >= 2 {
		args = args[:len(args)-2]
	}
	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+w.sql(), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// toLowerStatus los estados de catálogo (active/inactive) se guardan en minúscula.
func toLowerStatus(s string) string {
	return strings.ToLower(s)
}
