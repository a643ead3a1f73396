package repository

import (
	"context"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// SessionRepository persiste las sesiones emitidas, indexadas por jti.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get devuelve (nil, nil) si la sesión no existe o ya venció.
	Get(ctx context.Context, tokenID string) (*entity.Session, error)
	Delete(ctx context.Context, tokenID string) error
}
