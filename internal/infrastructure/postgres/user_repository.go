package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/records"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios sobre la tabla records con búsqueda por email.
type UserRepo struct {
	*RecordRepo[*entity.User]
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{RecordRepo: NewRecordRepository[*entity.User](pool, entity.KindUser)}
}

// FindByEmail obtiene un usuario por email exacto; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, selectRecords+` AND data->>'email' = $2 LIMIT 1`, r.kind, strings.TrimSpace(email)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return records.Decode[*entity.User](raw)
}
