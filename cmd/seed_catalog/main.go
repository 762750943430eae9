// seed_catalog importa ítems de catálogo desde un CSV a una empresa.
//
// Uso:
//
//	go run ./cmd/seed_catalog --company <uuid> --file productos.csv [--encoding latin1] [--dry-run]
//
// Columnas (encabezado obligatorio, en cualquier orden): sku, name, price, tax_rate,
// price_includes_vat, unit_measure, description. Separador ";" o ",". Los archivos que
// no son UTF-8 válido se leen como ISO-8859-1 (exportaciones de Excel en Windows).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-pos-api/pkg/config"
	"github.com/jhoicas/facturacion-pos-api/pkg/logger"
)

func main() {
	companyID := pflag.String("company", "", "ID de la empresa destino")
	path := pflag.String("file", "productos.csv", "ruta del CSV")
	encoding := pflag.String("encoding", "auto", "auto | utf8 | latin1")
	dryRun := pflag.Bool("dry-run", false, "solo valida el archivo, no escribe")
	pflag.Parse()

	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "--company es requerido")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseCatalog(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "interpretar CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%d ítems válidos en %s\n", len(rows), *path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name}).Component("seed_catalog")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	company, err := postgres.NewCompanyRepository(pool).GetByID(ctx, *companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar empresa")
	}
	if company == nil {
		log.Fatal().Str("company_id", *companyID).Msg("empresa no encontrada")
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	var created, skipped int
	for _, r := range rows {
		_, err := productUC.Create(ctx, company.ID, r.request)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Debug().Str("sku", r.request.SKU).Msg("sku existente, se omite")
		default:
			log.Error().Err(err).Int("line", r.line).Str("sku", r.request.SKU).Msg("no se pudo crear el ítem")
		}
	}
	log.Info().
		Str("company", company.Name).
		Int("created", created).
		Int("skipped", skipped).
		Int("total", len(rows)).
		Msg("importación terminada")
}
