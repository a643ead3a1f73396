package fallback

import (
	"context"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

// LocalUserStore copia local de usuarios.
type LocalUserStore interface {
	repository.UserRepository
	Replace(list []*entity.User) error
}

// UserRepo usuarios con respaldo local.
type UserRepo struct {
	*RecordRepo[*entity.User]
	primary repository.UserRepository
	local   LocalUserStore
}

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepository construye el repositorio combinado de usuarios.
func NewUserRepository(primary repository.UserRepository, local LocalUserStore, log *logger.Logger) *UserRepo {
	return &UserRepo{
		RecordRepo: NewRecordRepository[*entity.User](entity.KindUser, primary, local, log),
		primary:    primary,
		local:      local,
	}
}

// FindByEmail busca por email exacto en el remoto o en la copia local.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.primary.FindByEmail(ctx, email)
	if err == nil || !r.unavailable(err, "FindByEmail") {
		return u, err
	}
	return r.local.FindByEmail(ctx, email)
}
