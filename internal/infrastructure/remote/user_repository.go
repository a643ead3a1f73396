package remote

import (
	"context"
	"strings"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios del backend REST.
type UserRepo struct {
	*RecordRepo[*entity.User]
}

// NewUserRepository construye el repositorio remoto de usuarios.
func NewUserRepository(client *Client) *UserRepo {
	return &UserRepo{RecordRepo: NewRecordRepository[*entity.User](client, entity.KindUser)}
}

// FindByEmail busca con ?q=email y exige coincidencia exacta; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	users, err := r.Search(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
