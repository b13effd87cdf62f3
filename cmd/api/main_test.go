package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La especificación swagger se sirve como archivo estático; si falta, el
// middleware aborta el arranque. El archivo viaja versionado con el repo.
func TestSwaggerSpec_ExisteYCubreLasRutas(t *testing.T) {
	datos, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json tiene que estar versionado")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(datos, &spec))
	assert.Equal(t, "2.0", spec.Swagger)

	for _, ruta := range []string{
		"/health",
		"/api/auth/login",
		"/api/reabastecimiento/calcular",
		"/api/reabastecimiento/exportar",
		"/api/reabastecimiento/picking-pdf",
		"/api/redistribucion/calcular",
		"/api/existencias",
		"/api/analisis-marca/{marca}",
	} {
		assert.Contains(t, spec.Paths, ruta)
	}
}

// Registrar el middleware con la misma configuración de main no puede tumbar
// el proceso antes de Listen.
func TestSwaggerMiddleware_RegistraSinPanic(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join("..", "..")))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NotPanics(t, func() {
		app := fiber.New()
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "JAGI ERP API",
		}))
	})
}
