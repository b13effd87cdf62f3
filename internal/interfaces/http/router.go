package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jonacogo/jagi-erp/internal/application/analisis"
	"github.com/jonacogo/jagi-erp/internal/application/auth"
	"github.com/jonacogo/jagi-erp/internal/application/existencias"
	"github.com/jonacogo/jagi-erp/internal/application/reabastecimiento"
	"github.com/jonacogo/jagi-erp/internal/application/redistribucion"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/excel"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReabastecimientoUC *reabastecimiento.UseCase
	RedistribucionUC   *redistribucion.UseCase
	ExistenciasUC      *existencias.UseCase
	AnalisisUC         *analisis.UseCase
	AuthUC             *auth.UseCase
	Exporter           *excel.Exporter
	PickingPDF         *pdf.PickingPDFGenerator
	JWTSecret          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reabastecimiento (protegido)
	reab := protected.Group("/reabastecimiento")
	reabHandler := NewReabastecimientoHandler(deps.ReabastecimientoUC, deps.Exporter, deps.PickingPDF)
	reab.Post("/calcular", reabHandler.Calcular)
	reab.Post("/exportar", reabHandler.Exportar)
	reab.Post("/picking-pdf", reabHandler.PickingPDF)

	// Redistribución (protegido)
	redis := protected.Group("/redistribucion")
	redisHandler := NewRedistribucionHandler(deps.RedistribucionUC)
	redis.Post("/calcular", redisHandler.Calcular)

	// Existencias (protegido)
	existenciasHandler := NewExistenciasHandler(deps.ExistenciasUC)
	protected.Get("/existencias", existenciasHandler.Listar)

	// Análisis por marca (protegido)
	analisisHandler := NewAnalisisHandler(deps.AnalisisUC)
	protected.Get("/analisis-marca/:marca", analisisHandler.Analizar)
}
