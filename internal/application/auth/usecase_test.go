package auth_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "smartbodega-test"}

type fixture struct {
	uc       *auth.AuthUseCase
	users    *memory.UserRepo
	sessions *memory.SessionStore
	logs     *bytes.Buffer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := memory.NewUserRepository()
	seeded, err := seed.Users(bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Seed(seeded...))
	sessions := memory.NewSessionStore()
	var buf bytes.Buffer
	return fixture{
		uc:       auth.NewAuthUseCase(users, sessions, testJWT, logger.FromWriter(&buf)),
		users:    users,
		sessions: sessions,
		logs:     &buf,
	}
}

func TestLogin_TodosLosUsuariosSemillaActivos(t *testing.T) {
	f := newFixture(t)
	seeded, err := seed.Users(bcrypt.MinCost)
	require.NoError(t, err)

	for _, u := range seeded {
		if !u.IsActive() {
			continue
		}
		session, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: seed.DefaultPassword, Role: u.Role})
		require.NoError(t, err, u.Email)
		assert.Equal(t, u.ID, session.User.ID)
		assert.Equal(t, u.Email, session.User.Email)
		assert.Equal(t, u.Role, session.User.Role)
		assert.True(t, session.IsAuthenticated)
		assert.NotEmpty(t, session.Token)
	}
}

func TestLogin_AdministradoraDeEjemplo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Login(ctx, dto.LoginRequest{Email: "laura.ortiz@sena.edu.co", Password: "123456", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, session.User.PasswordHash, "el snapshot de sesión no lleva el hash")
	require.NotNil(t, session.User.LastAccess)

	stored, err := f.users.GetByID(ctx, session.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastAccess, "el último acceso se persiste")
	assert.NotEmpty(t, stored.PasswordHash)
	assert.Contains(t, f.logs.String(), "inicio de sesión exitoso")
}

func TestLogin_OrdenDeErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.LoginRequest
		want error
	}{
		{"email desconocido", dto.LoginRequest{Email: "nadie@sena.edu.co", Password: "123456", Role: entity.RoleAdmin}, domain.ErrUserNotFound},
		{"contraseña incorrecta", dto.LoginRequest{Email: "laura.ortiz@sena.edu.co", Password: "654321", Role: entity.RoleAdmin}, domain.ErrInvalidCredential},
		{"contraseña incorrecta y rol errado", dto.LoginRequest{Email: "laura.ortiz@sena.edu.co", Password: "x", Role: entity.RoleGuest}, domain.ErrInvalidCredential},
		{"cuenta inactiva", dto.LoginRequest{Email: "jorge.castillo@sena.edu.co", Password: "123456", Role: entity.RoleOperator}, domain.ErrInactiveAccount},
		{"cuenta inactiva y rol errado", dto.LoginRequest{Email: "jorge.castillo@sena.edu.co", Password: "123456", Role: entity.RoleAdmin}, domain.ErrInactiveAccount},
		{"rol distinto", dto.LoginRequest{Email: "laura.ortiz@sena.edu.co", Password: "123456", Role: entity.RoleOperator}, domain.ErrRoleMismatch},
		{"campos vacíos", dto.LoginRequest{Email: "laura.ortiz@sena.edu.co"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Login(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.sessions.Len(), "ningún intento fallido crea sesión")
}

func TestLogout_BorraLaSesion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Login(ctx, dto.LoginRequest{Email: "carlos.ramirez@sena.edu.co", Password: "123456", Role: entity.RoleSupervisor})
	require.NoError(t, err)
	assert.Equal(t, 1, f.sessions.Len())

	got, err := f.uc.CheckAuth(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, got)

	f.uc.Logout(ctx, session.Token)

	got, err = f.uc.CheckAuth(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, f.sessions.Len())

	u, err := f.uc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogout_TokenBasura_NoFalla(t *testing.T) {
	f := newFixture(t)
	f.uc.Logout(context.Background(), "basura")
	f.uc.Logout(context.Background(), "")
}

func TestValidateToken_RequiereSesionPersistida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Login(ctx, dto.LoginRequest{Email: "andrea.gomez@sena.edu.co", Password: "123456", Role: entity.RoleOperator})
	require.NoError(t, err)

	claims, err := f.uc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, claims.Role)

	require.NoError(t, f.sessions.Delete(ctx, session.TokenID))
	_, err = f.uc.ValidateToken(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "token revocado aunque la firma sea válida")
}

func TestValidateToken_FirmaAjena(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Login(ctx, dto.LoginRequest{Email: "sofia.herrera@sena.edu.co", Password: "123456", Role: entity.RoleGuest})
	require.NoError(t, err)

	other := auth.NewAuthUseCase(f.users, f.sessions, auth.JWTConfig{Secret: "otro", ExpMinutes: 60}, nil)
	_, err = other.ValidateToken(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = other.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	got, err := f.uc.CheckAuth(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, got, "la revalidación fallida fuerza el logout")
}

func TestResolve_SesionValida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Login(ctx, dto.LoginRequest{Email: "miguel.torres@sena.edu.co", Password: "123456", Role: entity.RoleInstructor})
	require.NoError(t, err)

	got, err := f.uc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.Email, got.User.Email)

	_, err = f.uc.Resolve(ctx, "sin-sesion")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
