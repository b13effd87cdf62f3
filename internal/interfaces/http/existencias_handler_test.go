package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appexistencias "github.com/jonacogo/jagi-erp/internal/application/existencias"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
	apphttp "github.com/jonacogo/jagi-erp/internal/interfaces/http"
)

type fakeExistenciasRepo struct {
	detalles []repository.ExistenciaDetalle
}

func (f *fakeExistenciasRepo) Existencias(context.Context) ([]repository.Existencia, error) {
	return nil, nil
}
func (f *fakeExistenciasRepo) ExistenciasPorTienda(context.Context) ([]repository.ExistenciaDetalle, error) {
	return f.detalles, nil
}

func appExistencias(detalles []repository.ExistenciaDetalle) *fiber.App {
	app := fiber.New()
	h := apphttp.NewExistenciasHandler(appexistencias.NewUseCase(&fakeExistenciasRepo{detalles: detalles}))
	app.Get("/existencias", h.Listar)
	return app
}

func detallesDePrueba(n int) []repository.ExistenciaDetalle {
	out := make([]repository.ExistenciaDetalle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, repository.ExistenciaDetalle{
			Tienda:      fmt.Sprintf("Tienda %02d", i),
			Region:      "NORTE",
			CodBarras:   fmt.Sprintf("COD-%02d", i),
			Marca:       "ACME",
			StockActual: i,
		})
	}
	return out
}

type paginaExistencias struct {
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	Total       int `json:"total"`
	Existencias []struct {
		Tienda string `json:"tienda"`
	} `json:"existencias"`
}

func listarExistencias(t *testing.T, app *fiber.App, query string) paginaExistencias {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/existencias"+query, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body paginaExistencias
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// Sin parámetros el listado pagina con los valores por defecto (20 filas).
func TestExistencias_PaginaPorDefecto(t *testing.T) {
	app := appExistencias(detallesDePrueba(25))

	body := listarExistencias(t, app, "")

	assert.Equal(t, 20, body.Limit)
	assert.Equal(t, 0, body.Offset)
	assert.Equal(t, 25, body.Total, "el total reporta todas las filas, no la página")
	assert.Len(t, body.Existencias, 20)
	assert.Equal(t, "Tienda 00", body.Existencias[0].Tienda)
}

// limit/offset recortan la ventana sin perder el total.
func TestExistencias_LimitYOffset(t *testing.T) {
	app := appExistencias(detallesDePrueba(25))

	body := listarExistencias(t, app, "?limit=5&offset=10")

	assert.Equal(t, 5, body.Limit)
	assert.Equal(t, 10, body.Offset)
	assert.Equal(t, 25, body.Total)
	require.Len(t, body.Existencias, 5)
	assert.Equal(t, "Tienda 10", body.Existencias[0].Tienda)
	assert.Equal(t, "Tienda 14", body.Existencias[4].Tienda)
}

// Offset más allá del final: página vacía, nunca un error ni un panic por slice.
func TestExistencias_OffsetFueraDeRango(t *testing.T) {
	app := appExistencias(detallesDePrueba(3))

	body := listarExistencias(t, app, "?limit=10&offset=50")

	assert.Equal(t, 3, body.Total)
	assert.Empty(t, body.Existencias)
}

// Un limit desmedido se recorta al máximo permitido.
func TestExistencias_LimitSeRecortaAlMaximo(t *testing.T) {
	app := appExistencias(detallesDePrueba(150))

	body := listarExistencias(t, app, "?limit=500")

	assert.Equal(t, 100, body.Limit)
	assert.Len(t, body.Existencias, 100)
}
