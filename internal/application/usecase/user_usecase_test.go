package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
)

func newUserUseCase(t *testing.T) (*usecase.UserUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository()
	users, err := seed.Users(bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Seed(users...))
	return usecase.NewUserUseCase(repo, bcrypt.MinCost), repo
}

func TestUserUseCase_CreateHasheaPassword(t *testing.T) {
	uc, repo := newUserUseCase(t)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.CreateUserRequest{
		Name: "Paula", Surname: "Mejía", Email: "paula.mejia@sena.edu.co",
		Password: "secreta1", Role: entity.RoleSupervisor, Phone: "3110000000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.False(t, resp.CreatedAt.IsZero())

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreta1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))
}

func TestUserUseCase_CreateEmailDuplicado(t *testing.T) {
	uc, _ := newUserUseCase(t)
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name: "Otra", Email: "laura.ortiz@sena.edu.co", Password: "123456", Role: entity.RoleGuest,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_UpdateCambiaPasswordYRol(t *testing.T) {
	uc, repo := newUserUseCase(t)
	ctx := context.Background()

	pw := "nueva-clave"
	role := entity.RoleSupervisor
	resp, err := uc.Update(ctx, 3, dto.UpdateUserRequest{Password: &pw, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupervisor, resp.Role)

	stored, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(pw)))
}

func TestUserUseCase_UpdateEmailDeOtroUsuario(t *testing.T) {
	uc, _ := newUserUseCase(t)
	taken := "laura.ortiz@sena.edu.co"
	_, err := uc.Update(context.Background(), 2, dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Update(context.Background(), 1, dto.UpdateUserRequest{Email: &taken})
	assert.NoError(t, err, "conservar el propio email no es duplicado")
}

func TestUserUseCase_ListFiltraPorRol(t *testing.T) {
	uc, _ := newUserUseCase(t)
	ops, err := uc.List(context.Background(), dto.ListQuery{Field: entity.RoleOperator})
	require.NoError(t, err)
	assert.Len(t, ops, 2)
	for _, u := range ops {
		assert.Equal(t, entity.RoleOperator, u.Role)
	}
}

func TestUserUseCase_ListRangoIncluyeDiaFinal(t *testing.T) {
	uc, _ := newUserUseCase(t)
	ctx := context.Background()

	sameDay, err := uc.List(ctx, dto.ListQuery{From: "2024-01-15", To: "2024-01-15"})
	require.NoError(t, err)
	assert.Len(t, sameDay, 6, "creados 2024-01-15 08:00 entran en el rango de ese día")

	untilDay, err := uc.List(ctx, dto.ListQuery{To: "2024-01-15"})
	require.NoError(t, err)
	assert.Len(t, untilDay, 6)

	before, err := uc.List(ctx, dto.ListQuery{To: "2024-01-14"})
	require.NoError(t, err)
	assert.Empty(t, before)
}
