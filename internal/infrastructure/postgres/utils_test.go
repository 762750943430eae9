package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql(), "sin condiciones no hay WHERE")

	w.add("company_id = $%[1]d", "c1")
	w.search("50%_off", "name", "sku")
	w.add("status = $%[1]d", "ISSUED")
	limit := w.page(20, 40)

	assert.Equal(t, " WHERE company_id = $1 AND (name ILIKE $2 OR sku ILIKE $2) AND status = $3", w.sql())
	assert.Equal(t, " LIMIT $4 OFFSET $5", limit)
	assert.Equal(t, []any{"c1", `%50\%\_off%`, "ISSUED", 20, 40}, w.args)
}

func TestWhereBuilder_SearchVacioNoAgregaCondicion(t *testing.T) {
	var w whereBuilder
	w.search("", "name")
	assert.Empty(t, w.conds)
	assert.Empty(t, w.args)
}

func TestOrderBy_ListaBlanca(t *testing.T) {
	allowed := map[string]string{"name": "name", "total": "grand_total"}
	tests := []struct {
		sort string
		desc bool
		want string
	}{
		{"name", false, " ORDER BY name ASC, id ASC"},
		{"total", true, " ORDER BY grand_total DESC, id DESC"},
		{"name; DROP TABLE invoices", false, " ORDER BY created_at ASC, id ASC"},
		{"", true, " ORDER BY created_at DESC, id DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderBy(tt.sort, tt.desc, allowed, "created_at"), tt.sort)
	}
}

func TestErroresPostgres(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
	assert.False(t, isUniqueViolation(nil))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/pos?sslmode=disable", migrateURL("postgres://u:p@db:5432/pos?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/pos", migrateURL("postgresql://u@db/pos"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2, "al menos up y down")
}
