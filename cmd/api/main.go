package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/smartbodega-api/internal/application/analytics"
	"github.com/jhoicas/smartbodega-api/internal/application/auth"
	"github.com/jhoicas/smartbodega-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/smartbodega-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/smartbodega-api/internal/interfaces/http"
	"github.com/jhoicas/smartbodega-api/pkg/config"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Precios como números en las respuestas JSON.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	stores, err := buildBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar backends")
	}
	defer stores.Close()

	authUC := auth.NewAuthUseCase(stores.Users, stores.Sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	dashboardUC := appanalytics.NewDashboardUseCase(appanalytics.Sources{
		Users:          stores.Users,
		Products:       stores.Products,
		Categories:     stores.Categories,
		Entries:        stores.Entries,
		Exits:          stores.Exits,
		Sites:          stores.Sites,
		Centers:        stores.Centers,
		Areas:          stores.Areas,
		Municipalities: stores.Municipalities,
	}, stores.Analytics)

	// PDF: reporte de entradas y salidas por rango de fechas
	reportUC := appanalytics.NewReportUseCase(stores.Entries, stores.Exits, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		Log:          log,
		Metrics:      httpRouter.NewMetrics("smartbodega"),
	})

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SmartBodega API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: no existe la especificación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(stores.Users, bcrypt.DefaultCost),
		ProductUC:      usecase.NewProductUseCase(stores.Products),
		CategoryUC:     usecase.NewCategoryUseCase(stores.Categories),
		EntryUC:        usecase.NewEntryUseCase(stores.Entries),
		ExitUC:         usecase.NewExitUseCase(stores.Exits),
		SiteUC:         usecase.NewSiteUseCase(stores.Sites),
		CenterUC:       usecase.NewCenterUseCase(stores.Centers),
		AreaUC:         usecase.NewAreaUseCase(stores.Areas),
		MunicipalityUC: usecase.NewMunicipalityUseCase(stores.Municipalities),
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
