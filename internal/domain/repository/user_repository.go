package repository

import (
	"context"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// FindByEmail devuelve (nil, nil) si no existe, igual que los repositorios PostgreSQL.
type UserRepository interface {
	RecordRepository[*entity.User]
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
