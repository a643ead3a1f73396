package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/fallback"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/redis"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/remote"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
	"github.com/jhoicas/smartbodega-api/pkg/config"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

// backends repositorios resueltos según STORE_BACKEND y SESSION_BACKEND.
type backends struct {
	Users          repository.UserRepository
	Products       repository.RecordRepository[*entity.Product]
	Categories     repository.RecordRepository[*entity.Category]
	Entries        repository.RecordRepository[*entity.Entry]
	Exits          repository.RecordRepository[*entity.Exit]
	Sites          repository.RecordRepository[*entity.Site]
	Centers        repository.RecordRepository[*entity.Center]
	Areas          repository.RecordRepository[*entity.Area]
	Municipalities repository.RecordRepository[*entity.Municipality]
	Analytics      repository.AnalyticsRepository
	Sessions       repository.SessionRepository

	closers []func()
}

// Close libera conexiones en orden inverso de apertura.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// builder estado compartido mientras se construyen los repositorios.
type builder struct {
	cfg    *config.Config
	log    *logger.Logger
	pool   *pgxpool.Pool
	client *remote.Client
	err    error
}

func buildBackends(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backends, error) {
	b := &builder{cfg: cfg, log: log}
	out := &backends{}

	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		out.closers = append(out.closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			out.Close()
			return nil, fmt.Errorf("esquema PostgreSQL: %w", err)
		}
		b.pool = pool
	case config.StoreRemote, config.StoreFallback:
		b.client = remote.NewClient(cfg.Store.APIBaseURL, cfg.Store.APITimeout)
	}

	out.Users = userRepo(b)
	out.Products = recordRepo(b, entity.KindProduct, seed.Products())
	out.Categories = recordRepo(b, entity.KindCategory, seed.Categories())
	out.Entries = recordRepo(b, entity.KindEntry, seed.Entries())
	out.Exits = recordRepo(b, entity.KindExit, seed.Exits())
	out.Sites = recordRepo(b, entity.KindSite, seed.Sites())
	out.Centers = recordRepo(b, entity.KindCenter, seed.Centers())
	out.Areas = recordRepo(b, entity.KindArea, seed.Areas())
	out.Municipalities = recordRepo(b, entity.KindMunicipality, seed.Municipalities())
	if b.err != nil {
		out.Close()
		return nil, b.err
	}

	if b.pool != nil {
		out.Analytics = postgres.NewAnalyticsRepository(b.pool)
	} else {
		out.Analytics = appanalytics.NewRecordAnalytics(out.Entries, out.Exits)
	}

	switch cfg.Session.Backend {
	case config.SessionRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		out.closers = append(out.closers, func() { closeRedis(client, log) })
		out.Sessions = redis.NewSessionStore(client, cfg.Redis.Prefix)
	default:
		out.Sessions = memory.NewSessionStore()
	}

	log.Info().
		Str("store", cfg.Store.Backend).
		Str("sessions", cfg.Session.Backend).
		Msg("backends listos")
	return out, nil
}

func closeRedis(client *goredis.Client, log *logger.Logger) {
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar Redis")
	}
}

// recordRepo resuelve el repositorio de kind. Los almacenes en memoria (backend memory y
// copia local del fallback) arrancan con seedData.
func recordRepo[T entity.Record](b *builder, kind string, seedData []T) repository.RecordRepository[T] {
	switch b.cfg.Store.Backend {
	case config.StorePostgres:
		return postgres.NewRecordRepository[T](b.pool, kind)
	case config.StoreRemote:
		return remote.NewRecordRepository[T](b.client, kind)
	}
	local := memory.NewStore[T](kind, memory.WithLatency(b.cfg.Store.MockLatency))
	if err := local.Seed(seedData...); err != nil && b.err == nil {
		b.err = fmt.Errorf("seed %s: %w", kind, err)
	}
	if b.cfg.Store.Backend == config.StoreFallback {
		return fallback.NewRecordRepository[T](kind, remote.NewRecordRepository[T](b.client, kind), local, b.log)
	}
	return local
}

func userRepo(b *builder) repository.UserRepository {
	switch b.cfg.Store.Backend {
	case config.StorePostgres:
		return postgres.NewUserRepository(b.pool)
	case config.StoreRemote:
		return remote.NewUserRepository(b.client)
	}
	local := memory.NewUserRepository(memory.WithLatency(b.cfg.Store.MockLatency))
	users, err := seed.Users(bcrypt.DefaultCost)
	if err == nil {
		err = local.Seed(users...)
	}
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("seed %s: %w", entity.KindUser, err)
	}
	if b.cfg.Store.Backend == config.StoreFallback {
		return fallback.NewUserRepository(remote.NewUserRepository(b.client), local, b.log)
	}
	return local
}
