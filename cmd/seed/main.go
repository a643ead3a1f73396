// seed crea el esquema PostgreSQL y carga los datos iniciales de la consola: usuarios,
// catálogos, movimientos y, opcionalmente, los municipios del XML oficial Municipios.xml.
//
// Uso: go run ./cmd/seed [ruta/Municipios.xml]
// Es idempotente: los registros se insertan o actualizan por (kind, id).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
	"github.com/jhoicas/smartbodega-api/pkg/config"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	municipalities := seed.Municipalities()
	if len(os.Args) > 1 {
		municipalities, err = importMunicipios(os.Args[1], municipalities)
		if err != nil {
			log.Fatal().Err(err).Str("file", os.Args[1]).Msg("importar municipios")
		}
	}

	users, err := seed.Users(bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("usuarios semilla")
	}

	steps := []struct {
		kind string
		run  func() (int, error)
	}{
		{entity.KindUser, func() (int, error) { return upsertAll(ctx, pool, entity.KindUser, users) }},
		{entity.KindProduct, func() (int, error) { return upsertAll(ctx, pool, entity.KindProduct, seed.Products()) }},
		{entity.KindCategory, func() (int, error) { return upsertAll(ctx, pool, entity.KindCategory, seed.Categories()) }},
		{entity.KindEntry, func() (int, error) { return upsertAll(ctx, pool, entity.KindEntry, seed.Entries()) }},
		{entity.KindExit, func() (int, error) { return upsertAll(ctx, pool, entity.KindExit, seed.Exits()) }},
		{entity.KindSite, func() (int, error) { return upsertAll(ctx, pool, entity.KindSite, seed.Sites()) }},
		{entity.KindCenter, func() (int, error) { return upsertAll(ctx, pool, entity.KindCenter, seed.Centers()) }},
		{entity.KindArea, func() (int, error) { return upsertAll(ctx, pool, entity.KindArea, seed.Areas()) }},
		{entity.KindMunicipality, func() (int, error) { return upsertAll(ctx, pool, entity.KindMunicipality, municipalities) }},
	}
	for _, s := range steps {
		n, err := s.run()
		if err != nil {
			log.Fatal().Err(err).Str("kind", s.kind).Msg("cargar semilla")
		}
		log.Info().Str("kind", s.kind).Int("records", n).Msg("semilla cargada")
	}
}

func importMunicipios(path string, base []*entity.Municipality) ([]*entity.Municipality, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	imported, err := seed.ParseMunicipios(f)
	if err != nil {
		return nil, err
	}
	return seed.MergeMunicipalities(base, imported), nil
}

func upsertAll[T entity.Record](ctx context.Context, pool *pgxpool.Pool, kind string, list []T) (int, error) {
	repo := postgres.NewRecordRepository[T](pool, kind)
	for _, rec := range list {
		if err := repo.Upsert(ctx, rec); err != nil {
			return 0, fmt.Errorf("%s %d: %w", kind, rec.GetID(), err)
		}
	}
	return len(list), nil
}
