package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smartbodega-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/smartbodega-api/internal/interfaces/http"
)

type testEnv struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

// newTestEnv app completa sobre almacenes en memoria con los datos semilla.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	authUC, users, _ := newAuthUseCase(t)

	products := memory.NewStore[*entity.Product](entity.KindProduct)
	require.NoError(t, products.Seed(seed.Products()...))
	categories := memory.NewStore[*entity.Category](entity.KindCategory)
	require.NoError(t, categories.Seed(seed.Categories()...))
	entries := memory.NewStore[*entity.Entry](entity.KindEntry)
	require.NoError(t, entries.Seed(seed.Entries()...))
	exits := memory.NewStore[*entity.Exit](entity.KindExit)
	require.NoError(t, exits.Seed(seed.Exits()...))
	sites := memory.NewStore[*entity.Site](entity.KindSite)
	require.NoError(t, sites.Seed(seed.Sites()...))
	centers := memory.NewStore[*entity.Center](entity.KindCenter)
	require.NoError(t, centers.Seed(seed.Centers()...))
	areas := memory.NewStore[*entity.Area](entity.KindArea)
	require.NoError(t, areas.Seed(seed.Areas()...))
	municipalities := memory.NewStore[*entity.Municipality](entity.KindMunicipality)
	require.NoError(t, municipalities.Seed(seed.Municipalities()...))

	src := analytics.Sources{
		Users: users, Products: products, Categories: categories, Entries: entries, Exits: exits,
		Sites: sites, Centers: centers, Areas: areas, Municipalities: municipalities,
	}
	app := apphttp.NewApp(apphttp.AppConfig{Name: "smartbodega-test", Metrics: apphttp.NewMetrics("smartbodega_test")})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(users, bcrypt.MinCost),
		ProductUC:      usecase.NewProductUseCase(products),
		CategoryUC:     usecase.NewCategoryUseCase(categories),
		EntryUC:        usecase.NewEntryUseCase(entries),
		ExitUC:         usecase.NewExitUseCase(exits),
		SiteUC:         usecase.NewSiteUseCase(sites),
		CenterUC:       usecase.NewCenterUseCase(centers),
		AreaUC:         usecase.NewAreaUseCase(areas),
		MunicipalityUC: usecase.NewMunicipalityUseCase(municipalities),
		DashboardUC:    analytics.NewDashboardUseCase(src, analytics.NewRecordAnalytics(entries, exits)),
		ReportUC:       analytics.NewReportUseCase(entries, exits, pdf.NewMarotoPDFGenerator()),
	})
	return testEnv{app: app, authUC: authUC}
}

// call lanza method path con authHeader y body JSON opcional.
func (e testEnv) call(t *testing.T, method, path, authHeader, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.call(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_AdministradorSemilla(t *testing.T) {
	env := newTestEnv(t)
	resp := env.call(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"laura.ortiz@sena.edu.co","password":"123456","role":"administrador"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), apphttp.SessionCookie)

	var body map[string]any
	decode(t, resp, &body)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, true, body["is_authenticated"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "laura.ortiz@sena.edu.co", user["email"])
	assert.NotContains(t, user, "password_hash")
}

func TestLogin_Errores(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"rol distinto", `{"email":"laura.ortiz@sena.edu.co","password":"123456","role":"operador"}`, http.StatusUnauthorized, "ROLE_MISMATCH"},
		{"password incorrecto", `{"email":"laura.ortiz@sena.edu.co","password":"654321","role":"administrador"}`, http.StatusUnauthorized, "INVALID_CREDENTIAL"},
		{"usuario inexistente", `{"email":"nadie@sena.edu.co","password":"123456","role":"administrador"}`, http.StatusUnauthorized, "USER_NOT_FOUND"},
		{"cuenta inactiva", `{"email":"jorge.castillo@sena.edu.co","password":"123456","role":"operador"}`, http.StatusForbidden, "INACTIVE_ACCOUNT"},
		{"campos vacíos", `{"email":"","password":"","role":""}`, http.StatusBadRequest, "VALIDATION"},
		{"json inválido", `{`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.call(t, http.MethodPost, "/api/auth/login", "", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]any
			decode(t, resp, &body)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestMeYLogout(t *testing.T) {
	env := newTestEnv(t)
	header := tokenForRole(t, env.authUC, entity.RoleSupervisor)

	var me map[string]any
	decode(t, env.call(t, http.MethodGet, "/api/auth/me", header, ""), &me)
	assert.Equal(t, true, me["is_authenticated"])
	assert.Nil(t, me["token"])

	resp := env.call(t, http.MethodPost, "/api/auth/logout", header, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	decode(t, env.call(t, http.MethodGet, "/api/auth/me", header, ""), &me)
	assert.Equal(t, false, me["is_authenticated"])

	resp = env.call(t, http.MethodGet, "/api/products", header, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogo_ListarBuscarYFiltrar(t *testing.T) {
	env := newTestEnv(t)
	header := tokenForRole(t, env.authUC, entity.RoleGuest)

	var all struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	decode(t, env.call(t, http.MethodGet, "/api/products", header, ""), &all)
	require.Equal(t, len(seed.Products()), all.Total)
	assert.Equal(t, float64(1), all.Items[0]["id"], "orden de inserción")

	var found struct {
		Items []map[string]any `json:"items"`
	}
	decode(t, env.call(t, http.MethodGet, "/api/products?q=laptop", header, ""), &found)
	require.NotEmpty(t, found.Items)
	for _, p := range found.Items {
		assert.Contains(t, strings.ToLower(p["name"].(string)+" "+p["description"].(string)+" "+p["code"].(string)+" "+p["category"].(string)), "laptop")
	}

	var filtered struct {
		Total int `json:"total"`
	}
	decode(t, env.call(t, http.MethodGet, "/api/products?field=all", header, ""), &filtered)
	assert.Equal(t, all.Total, filtered.Total, "all desactiva el filtro")

	resp := env.call(t, http.MethodGet, "/api/entries?from=2024-13-01", tokenForRole(t, env.authUC, entity.RoleOperator), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogo_SalidaDeEjemploPorHTTP(t *testing.T) {
	env := newTestEnv(t)
	header := tokenForRole(t, env.authUC, entity.RoleOperator)

	resp := env.call(t, http.MethodPost, "/api/exits", header,
		`{"product":"Laptop HP","quantity":"5","date":"2024-03-20","destination":"Sede Norte","category":"Electrónicos","price":"899.99","status":"Completado"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, float64(3), created["id"])
	assert.Equal(t, float64(5), created["quantity"])

	resp = env.call(t, http.MethodPut, "/api/exits/3", header, `{"id":99,"quantity":"7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decode(t, resp, &updated)
	assert.Equal(t, float64(3), updated["id"], "el id nunca se modifica")
	assert.Equal(t, float64(7), updated["quantity"])
	assert.Equal(t, "Sede Norte", updated["destination"])

	resp = env.call(t, http.MethodDelete, "/api/exits/3", header, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.call(t, http.MethodGet, "/api/exits/3", header, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.call(t, http.MethodDelete, "/api/exits/3", header, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.call(t, http.MethodGet, "/api/exits/abc", header, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogo_PermisosDeEscritura(t *testing.T) {
	env := newTestEnv(t)
	product := `{"code":"PAP-010","name":"Resma carta","category":"Papelería","unit":"paquete","stock":"10","min_stock":"2","price":"18.50"}`

	resp := env.call(t, http.MethodPost, "/api/products", tokenForRole(t, env.authUC, entity.RoleOperator), product)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "operador no edita catálogos")

	resp = env.call(t, http.MethodPost, "/api/products", tokenForRole(t, env.authUC, entity.RoleSupervisor), product)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.call(t, http.MethodPost, "/api/products", "", product)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/entries", tokenForRole(t, env.authUC, entity.RoleGuest), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "invitado no ve movimientos")
}

func TestUsuarios_SoloAdministrador(t *testing.T) {
	env := newTestEnv(t)
	admin := tokenForRole(t, env.authUC, entity.RoleAdmin)

	resp := env.call(t, http.MethodGet, "/api/users", tokenForRole(t, env.authUC, entity.RoleSupervisor), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := `{"name":"Paula","surname":"Díaz","email":"Paula.Diaz@sena.edu.co","password":"secreto1","role":"operador"}`
	resp = env.call(t, http.MethodPost, "/api/users", admin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, float64(7), created["id"])
	assert.Equal(t, "paula.diaz@sena.edu.co", created["email"])
	assert.NotContains(t, created, "password_hash")

	resp = env.call(t, http.MethodPost, "/api/users", admin, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.call(t, http.MethodPost, "/api/auth/login", "", `{"email":"paula.diaz@sena.edu.co","password":"secreto1","role":"operador"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.call(t, http.MethodDelete, "/api/users/1", admin, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "no puede eliminarse a sí mismo")
}

func TestDashboardYReportes(t *testing.T) {
	env := newTestEnv(t)
	supervisor := tokenForRole(t, env.authUC, entity.RoleSupervisor)

	var summary map[string]any
	resp := env.call(t, http.MethodGet, "/api/dashboard/summary", tokenForRole(t, env.authUC, entity.RoleGuest), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &summary)
	assert.NotEmpty(t, summary["counts"])

	resp = env.call(t, http.MethodGet, "/api/reports/movements.pdf?from=2024-01-01&to=2024-12-31", supervisor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = env.call(t, http.MethodGet, "/api/reports/movements.pdf", tokenForRole(t, env.authUC, entity.RoleOperator), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/api/reports/movements?from=2024-12-31&to=2024-01-01", supervisor, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConsola_RedireccionesDelGuard(t *testing.T) {
	env := newTestEnv(t)

	resp := env.call(t, http.MethodGet, "/console/users", "", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.ConsoleLoginPath, resp.Header.Get("Location"))

	resp = env.call(t, http.MethodGet, "/console/users", tokenForRole(t, env.authUC, entity.RoleOperator), "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.ConsoleHomePath, resp.Header.Get("Location"))
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "allowed_roles", "el contenido nunca se entrega a un rol sin permiso")

	admin := tokenForRole(t, env.authUC, entity.RoleAdmin)
	resp = env.call(t, http.MethodGet, "/console/users", admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var screen apphttp.ScreenResponse
	decode(t, resp, &screen)
	assert.Equal(t, "users", screen.Screen)
	assert.True(t, screen.CanWrite)

	resp = env.call(t, http.MethodGet, "/console/login", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.call(t, http.MethodGet, "/console/login", admin, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = env.call(t, http.MethodGet, "/console/desconocida", admin, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConsola_CookieDeSesion(t *testing.T) {
	env := newTestEnv(t)
	header := tokenForRole(t, env.authUC, entity.RoleOperator)

	req := httptest.NewRequest(http.MethodGet, "/console/exits", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: strings.TrimPrefix(header, "Bearer ")})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics_ExponeContadores(t *testing.T) {
	env := newTestEnv(t)
	env.call(t, http.MethodGet, "/health", "", "")

	resp := env.call(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "smartbodega_test_http_requests_total")
	assert.Contains(t, string(raw), `route="/health"`)
}
