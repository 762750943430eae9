// migrate aplica o revierte las migraciones SQL embebidas.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [n]   (sin n revierte todas)
//	go run ./cmd/migrate version
//
// La conexión se toma de DATABASE_URL o DB_* (igual que la API).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-pos-api/pkg/config"
	"github.com/jhoicas/facturacion-pos-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up | down [n] | version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name}).Component("migrate")

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer mg.Close()

	switch os.Args[1] {
	case "up":
		if err := mg.Up(); err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
	case "down":
		n := 0
		if len(os.Args) > 2 {
			n, err = strconv.Atoi(os.Args[2])
			if err != nil || n < 0 {
				log.Fatal().Str("n", os.Args[2]).Msg("n debe ser un entero positivo")
			}
		}
		if err := mg.Down(n); err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
	case "version":
	default:
		log.Fatal().Str("comando", os.Args[1]).Msg("comando desconocido")
	}

	v, dirty, err := mg.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado de migraciones")
}
