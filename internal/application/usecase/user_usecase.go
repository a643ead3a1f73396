package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
)

// UserUseCase casos de uso de administración de usuarios. Nunca devuelve el hash.
type UserUseCase struct {
	repo    repository.UserRepository
	catalog *CatalogUseCase[*entity.User, dto.CreateUserRequest, dto.UpdateUserRequest]
	cost    int
	now     func() time.Time
}

// NewUserUseCase construye el caso de uso. cost es el costo bcrypt (0 = bcrypt.DefaultCost).
func NewUserUseCase(repo repository.UserRepository, cost int) *UserUseCase {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserUseCase{
		repo:    repo,
		catalog: NewCatalogUseCase[*entity.User, dto.CreateUserRequest, dto.UpdateUserRequest](entity.KindUser, repo),
		cost:    cost,
		now:     time.Now,
	}
}

// Create hashea la contraseña, valida el rol y exige email único.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := in.ToRecord()
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.CreatedAt = uc.now().UTC()
	created, err := uc.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(created), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// List búsqueda, filtro por rol o rango por fecha de creación.
func (uc *UserUseCase) List(ctx context.Context, q dto.ListQuery) ([]*dto.UserResponse, error) {
	users, err := uc.catalog.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// Update aplica el patch; una contraseña nueva se guarda hasheada y un email nuevo debe ser único.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch, err := in.ToPatch()
	if err != nil {
		return nil, err
	}
	if email, ok := patch["email"].(string); ok {
		existing, err := uc.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, err
		}
		patch["password_hash"] = string(hash)
	}
	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(updated), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.catalog.Delete(ctx, id)
}
