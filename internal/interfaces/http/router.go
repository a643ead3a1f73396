package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/guard"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	EntryUC        *usecase.EntryUseCase
	ExitUC         *usecase.ExitUseCase
	SiteUC         *usecase.SiteUseCase
	CenterUC       *usecase.CenterUseCase
	AreaUC         *usecase.AreaUseCase
	MunicipalityUC *usecase.MunicipalityUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ReportUC       *appanalytics.ReportUseCase
}

// Router registra las rutas de la API y de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	session := SessionMiddleware(deps.AuthUC)

	// Auth (público; logout y me toleran tokens inválidos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	// Users (solo administrador, lectura incluida)
	users := api.Group("/" + entity.KindUser)
	userHandler := NewUserHandler(deps.UserUC)
	admin := RequireRole(guard.WriteRoles(entity.KindUser)...)
	users.Get("/", session, admin, userHandler.List)
	users.Get("/:id", session, admin, userHandler.GetByID)
	users.Post("/", session, admin, userHandler.Create)
	users.Put("/:id", session, admin, userHandler.Update)
	users.Delete("/:id", session, admin, userHandler.Delete)

	// Catálogos y movimientos
	registerCatalog(api, session, deps.ProductUC)
	registerCatalog(api, session, deps.CategoryUC)
	registerCatalog(api, session, deps.EntryUC)
	registerCatalog(api, session, deps.ExitUC)
	registerCatalog(api, session, deps.SiteUC)
	registerCatalog(api, session, deps.CenterUC)
	registerCatalog(api, session, deps.AreaUC)
	registerCatalog(api, session, deps.MunicipalityUC)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	api.Get("/dashboard/summary", session, RequireRole(guard.Screens["dashboard"]...), dashboardHandler.GetSummary)
	reports := api.Group("/reports")
	reportRoles := RequireRole(guard.Screens["reports"]...)
	reports.Get("/movements", session, reportRoles, dashboardHandler.MovementsReport)
	reports.Get("/movements.pdf", session, reportRoles, dashboardHandler.MovementsReportPDF)

	// Consola: 302 para sesiones sin permiso
	consoleHandler := NewConsoleHandler(deps.AuthUC)
	app.Get("/console", func(c *fiber.Ctx) error { return c.Redirect(ConsoleHomePath, fiber.StatusFound) })
	app.Get("/console/:screen", consoleHandler.GuardScreen, consoleHandler.Screen)
}

// registerCatalog monta el CRUD de uc en /api/{kind}: lectura para los roles de la
// pantalla, escritura para los roles de edición de la colección.
func registerCatalog[T entity.Record, C usecase.CreateRequest[T], U usecase.UpdateRequest](api fiber.Router, session fiber.Handler, uc *usecase.CatalogUseCase[T, C, U]) {
	kind := uc.Kind()
	h := NewCatalogHandler(uc)
	read := RequireRole(guard.ReadRoles(kind)...)
	write := RequireRole(guard.WriteRoles(kind)...)

	g := api.Group("/" + kind)
	g.Get("/", session, read, h.List)
	g.Get("/:id", session, read, h.GetByID)
	g.Post("/", session, write, h.Create)
	g.Put("/:id", session, write, h.Update)
	g.Delete("/:id", session, write, h.Delete)
}
