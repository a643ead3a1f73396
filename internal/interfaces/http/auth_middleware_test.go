package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/smartbodega-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/smartbodega-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "smartbodega-test"}

// newAuthUseCase auth sobre los usuarios semilla en memoria.
func newAuthUseCase(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo, *memory.SessionStore) {
	t.Helper()
	users := memory.NewUserRepository()
	seeded, err := seed.Users(bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Seed(seeded...))
	sessions := memory.NewSessionStore()
	return auth.NewAuthUseCase(users, sessions, testJWT, nil), users, sessions
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para resolver la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, allowedRoles ...string) (*fiber.App, *auth.AuthUseCase, *memory.SessionStore) {
	t.Helper()
	authUC, _, sessions := newAuthUseCase(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionMiddleware(authUC),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app, authUC, sessions
}

// tokenForRole inicia sesión con el usuario semilla del rol indicado.
func tokenForRole(t *testing.T, authUC *auth.AuthUseCase, role string) string {
	t.Helper()
	emails := map[string]string{
		entity.RoleAdmin:      "laura.ortiz@sena.edu.co",
		entity.RoleSupervisor: "carlos.ramirez@sena.edu.co",
		entity.RoleOperator:   "andrea.gomez@sena.edu.co",
		entity.RoleInstructor: "miguel.torres@sena.edu.co",
		entity.RoleGuest:      "sofia.herrera@sena.edu.co",
	}
	session, err := authUC.Login(context.Background(), dto.LoginRequest{Email: emails[role], Password: seed.DefaultPassword, Role: role})
	require.NoError(t, err, "debe iniciarse sesión con el usuario semilla")
	return "Bearer " + session.Token
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaPorDefecto(t *testing.T) {
	app, authUC, _ := buildTestApp(t)
	resp := doRequest(t, app, tokenForRole(t, authUC, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "sin roles explícitos se permite solo administrador")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, float64(1), body["user_id"])
}

func TestRequireRole_SupervisorBloqueadoEnRutaPorDefecto(t *testing.T) {
	app, authUC, _ := buildTestApp(t)
	resp := doRequest(t, app, tokenForRole(t, authUC, entity.RoleSupervisor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// La autorización es por pertenencia al conjunto, no por igualdad con un único rol.
func TestRequireRole_OperadorAccedeConjuntoDeRoles(t *testing.T) {
	app, authUC, _ := buildTestApp(t, entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperator)
	resp := doRequest(t, app, tokenForRole(t, authUC, entity.RoleOperator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_InvitadoBloqueadoEnRutaDeEdicion(t *testing.T) {
	app, authUC, _ := buildTestApp(t, entity.RoleAdmin, entity.RoleSupervisor)
	resp := doRequest(t, app, tokenForRole(t, authUC, entity.RoleGuest))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SesionSinRol_Retorna401(t *testing.T) {
	app, _, sessions := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWT.Secret, 99, "legacy@sena.edu.co", "", testJWT.Issuer, testJWT.ExpMinutes)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{
		TokenID: tok.ID, Token: tok.Raw, IsAuthenticated: true,
		User: entity.User{ID: 99, Email: "legacy@sena.edu.co"}, ExpiresAt: tok.ExpiresAt,
	}))

	resp := doRequest(t, app, "Bearer "+tok.Raw)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinSesionEnContexto_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireRole(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app, _, _ := buildTestApp(t)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestSessionMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app, _, _ := buildTestApp(t)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestSessionMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app, _, _ := buildTestApp(t)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddleware_TokenFirmadoSinSesion_Retorna401(t *testing.T) {
	app, _, _ := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWT.Secret, 1, "laura.ortiz@sena.edu.co", entity.RoleAdmin, testJWT.Issuer, 60)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok.Raw)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "un token válido sin sesión persistida no autentica")
}

func TestSessionMiddleware_DespuesDeLogout_Retorna401(t *testing.T) {
	app, authUC, sessions := buildTestApp(t)
	header := tokenForRole(t, authUC, entity.RoleAdmin)
	require.Equal(t, 1, sessions.Len())

	authUC.Logout(context.Background(), header[len("Bearer "):])
	assert.Equal(t, 0, sessions.Len())

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Una sesión persistida cuyo token ya no valida (expirado) se cierra a la fuerza.
func TestSessionMiddleware_TokenExpirado_CierraSesion(t *testing.T) {
	app, _, sessions := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWT.Secret, 1, "laura.ortiz@sena.edu.co", entity.RoleAdmin, testJWT.Issuer, -1)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{
		TokenID: tok.ID, Token: tok.Raw, IsAuthenticated: true,
		User:      entity.User{ID: 1, Role: entity.RoleAdmin},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	resp := doRequest(t, app, "Bearer "+tok.Raw)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, sessions.Len(), "la revalidación fallida debe cerrar la sesión")
}
