package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/admin"
	"github.com/cotizaperu/cotiza-api/internal/application/auth"
	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/lookup"
	"github.com/cotizaperu/cotiza-api/internal/application/profile"
	"github.com/cotizaperu/cotiza-api/internal/application/quotes"
	"github.com/cotizaperu/cotiza-api/internal/application/reports"
	"github.com/cotizaperu/cotiza-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	QuotesUC  *quotes.UseCase
	BillingUC *billing.UseCase
	ProfileUC *profile.UseCase
	LookupUC  *lookup.UseCase
	AdminUC   *admin.UseCase
	ReportsUC *reports.UseCase
	JWTOpts   jwt.Options
	LogoDir   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Logos subidos, servidos como estáticos (público: los PDFs y el cliente
	// web los referencian por URL).
	app.Static("/logos", deps.LogoDir)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTOpts))

	// Cotizaciones (protegido)
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.QuotesUC, deps.BillingUC, deps.ReportsUC)
	cotizaciones.Post("/", cotizacionHandler.Create)
	cotizaciones.Get("/", cotizacionHandler.List)
	cotizaciones.Get("/export", cotizacionHandler.ExportExcel)
	cotizaciones.Get("/:id", cotizacionHandler.GetByID)
	cotizaciones.Put("/:id", cotizacionHandler.Update)
	cotizaciones.Delete("/:id", cotizacionHandler.Delete)
	cotizaciones.Get("/:id/pdf", cotizacionHandler.PDF)
	cotizaciones.Post("/:id/facturar", cotizacionHandler.Facturar)

	// Comprobantes (protegido)
	comprobantes := protected.Group("/comprobantes")
	comprobanteHandler := NewComprobanteHandler(deps.BillingUC)
	comprobantes.Get("/", comprobanteHandler.List)
	comprobantes.Get("/:id", comprobanteHandler.GetByID)
	comprobantes.Get("/:id/pdf", comprobanteHandler.PDF)
	comprobantes.Get("/:id/descargar/:kind", comprobanteHandler.Descargar)

	// Guías de remisión (protegido)
	guias := protected.Group("/guias")
	guiaHandler := NewGuiaHandler(deps.BillingUC)
	guias.Post("/", guiaHandler.Create)
	guias.Get("/", guiaHandler.List)

	// Perfil del negocio (protegido)
	perfil := protected.Group("/perfil")
	perfilHandler := NewPerfilHandler(deps.ProfileUC)
	perfil.Get("/", perfilHandler.Get)
	perfil.Put("/", perfilHandler.Update)
	perfil.Post("/logo", perfilHandler.UploadLogo)

	// Consulta de padrones DNI/RUC (protegido)
	consulta := protected.Group("/consulta")
	consultaHandler := NewConsultaHandler(deps.LookupUC)
	consulta.Get("/dni/:numero", consultaHandler.DNI)
	consulta.Get("/ruc/:numero", consultaHandler.RUC)

	// Panel de administración (protegido + rol admin)
	adminGroup := protected.Group("/admin", RequireAdmin())
	adminHandler := NewAdminHandler(deps.AdminUC, deps.BillingUC)
	adminGroup.Get("/stats", adminHandler.Stats)
	adminGroup.Get("/usuarios", adminHandler.ListUsers)
	adminGroup.Get("/usuarios/:id", adminHandler.GetUser)
	adminGroup.Get("/usuarios/:id/cotizaciones", adminHandler.ListUserQuotes)
	adminGroup.Get("/usuarios/:id/cotizaciones/:cid/pdf", adminHandler.QuotePDF)
	adminGroup.Put("/usuarios/:id/status", adminHandler.SetStatus)
	adminGroup.Delete("/usuarios/:id", adminHandler.DeleteUser)
}
