package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/records"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo store de usuarios con búsqueda por email.
type UserRepo struct {
	*Store[*entity.User]
}

// NewUserRepository construye el adaptador en memoria para usuarios.
func NewUserRepository(opts ...Option) *UserRepo {
	return &UserRepo{Store: NewStore[*entity.User](entity.KindUser, opts...)}
}

// FindByEmail coincidencia exacta por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Email == email {
			return records.Clone(u)
		}
	}
	return nil, nil
}
