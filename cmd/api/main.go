package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cotizaperu/cotiza-api/internal/application/admin"
	"github.com/cotizaperu/cotiza-api/internal/application/auth"
	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/lookup"
	"github.com/cotizaperu/cotiza-api/internal/application/profile"
	"github.com/cotizaperu/cotiza-api/internal/application/quotes"
	"github.com/cotizaperu/cotiza-api/internal/application/reports"
	"github.com/cotizaperu/cotiza-api/internal/infrastructure/apisnet"
	"github.com/cotizaperu/cotiza-api/internal/infrastructure/apisperu"
	infraexcel "github.com/cotizaperu/cotiza-api/internal/infrastructure/excel"
	infrapdf "github.com/cotizaperu/cotiza-api/internal/infrastructure/pdf"
	"github.com/cotizaperu/cotiza-api/internal/infrastructure/postgres"
	"github.com/cotizaperu/cotiza-api/internal/infrastructure/storage"
	httpRouter "github.com/cotizaperu/cotiza-api/internal/interfaces/http"
	"github.com/cotizaperu/cotiza-api/pkg/config"
	"github.com/cotizaperu/cotiza-api/pkg/jwt"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
	"github.com/cotizaperu/cotiza-api/pkg/secrets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	box, err := secrets.New(cfg.Billing.CredentialsKey)
	if err != nil {
		log.Fatal().Err(err).Msg("clave de cifrado de credenciales")
	}

	userRepo := postgres.NewUserRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	guiaRepo := postgres.NewGuiaRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	logoStore, err := storage.NewLogoStore(cfg.Storage.LogoDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de logos")
	}

	jwtOpts := jwt.Options{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	}

	apisPeruClient := apisperu.NewClient(cfg.Billing.BaseURL, log)
	apisNetClient := apisnet.NewClient(cfg.Lookup.APISNetToken, log)
	pdfRenderer := infrapdf.NewMarotoRenderer(cfg.Storage.LogoDir)
	excelExporter := infraexcel.NewExcelizeExporter()

	authUC := auth.New(userRepo, jwtOpts, cfg.AdminEmail, log)
	quotesUC := quotes.New(cotizacionRepo, sequenceRepo, log)
	billingUC := billing.New(
		userRepo, cotizacionRepo, comprobanteRepo, guiaRepo, sequenceRepo,
		apisPeruClient, pdfRenderer, box, log,
	)
	profileUC := profile.New(userRepo, box, logoStore, log)
	lookupUC := lookup.New(apisNetClient, log)
	adminUC := admin.New(userRepo, cotizacionRepo, statsRepo, log)
	reportsUC := reports.New(cotizacionRepo, excelExporter, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 90, // la declaración ante SUNAT puede tardar
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CotizaPerú API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		QuotesUC:  quotesUC,
		BillingUC: billingUC,
		ProfileUC: profileUC,
		LookupUC:  lookupUC,
		AdminUC:   adminUC,
		ReportsUC: reportsUC,
		JWTOpts:   jwtOpts,
		LogoDir:   cfg.Storage.LogoDir,
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
