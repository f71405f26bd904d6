package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
	"github.com/jhoicas/bill-detail/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Detail    *billing.DetailUseCase
	Export    *billing.ExportUseCase
	Style     view.Style
	JWTSecret string          // vacío = /api sin autenticación
	Metrics   nethttp.Handler // opcional, se monta en /metrics
	Log       zerolog.Logger
}

// Router registra las rutas HTML y de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Páginas (host HTML de la vista)
	pageHandler := NewPageHandler(deps.Detail, deps.Export, deps.Style, deps.Log)
	pages := app.Group("/bills")
	pages.Get("/", pageHandler.List)
	pages.Post("/open", pageHandler.Open)
	pages.Get("/:id", pageHandler.Detail)
	pages.Post("/:id/print", pageHandler.Print)

	// API JSON; protegida solo si hay secreto configurado
	auth, canRead, canPrint := fiber.Handler(passThrough), fiber.Handler(passThrough), fiber.Handler(passThrough)
	if deps.JWTSecret != "" {
		auth = AuthMiddleware(deps.JWTSecret)
		canRead = RequireRole(jwt.RoleViewer, jwt.RoleOperator)
		canPrint = RequireRole(jwt.RoleOperator)
	}

	billHandler := NewBillHandler(deps.Detail, deps.Export, deps.Style)
	bills := app.Group("/api/bills", auth)
	bills.Get("/", canRead, billHandler.List)
	bills.Get("/:id", canRead, billHandler.GetByID)
	bills.Get("/:id/pdf", canRead, billHandler.DownloadPDF)
	bills.Post("/:id/print", canPrint, billHandler.Print)
}
