package redistribucion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonacogo/jagi-erp/internal/application/redistribucion"
	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

type fakeRepos struct {
	politica    map[string]int
	tiendas     []entity.Tienda
	movimientos []asignacion.MovimientoVenta
	existencias []repository.Existencia
}

func (f *fakeRepos) PoliticaStockMinimo(context.Context) (map[string]int, error) {
	return f.politica, nil
}
func (f *fakeRepos) ReferenciasFijas(context.Context) ([]string, error) { return nil, nil }
func (f *fakeRepos) MarcasMultimarca(context.Context) ([]string, error) { return nil, nil }
func (f *fakeRepos) CodigosExcluidos(context.Context) ([]string, error) { return nil, nil }
func (f *fakeRepos) Tiendas(context.Context) ([]entity.Tienda, error)   { return f.tiendas, nil }

func (f *fakeRepos) MovimientosDesde(_ context.Context, desde time.Time) ([]asignacion.MovimientoVenta, error) {
	var out []asignacion.MovimientoVenta
	for _, m := range f.movimientos {
		if !m.Fecha.Before(desde) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepos) Existencias(context.Context) ([]repository.Existencia, error) {
	return f.existencias, nil
}
func (f *fakeRepos) ExistenciasPorTienda(context.Context) ([]repository.ExistenciaDetalle, error) {
	return nil, nil
}

func venta(tienda, codigo string, dias, cantidad int) asignacion.MovimientoVenta {
	return asignacion.MovimientoVenta{
		TiendaRaw: tienda,
		CodBarras: codigo,
		Fecha:     time.Now().AddDate(0, 0, -dias),
		Cantidad:  decimal.NewFromInt(int64(cantidad)),
	}
}

func repos() *fakeRepos {
	return &fakeRepos{
		politica: map[string]int{"default": 4},
		tiendas: []entity.Tienda{
			{RawName: "T DORMIDA", CleanName: "Dormida", Region: "NORTE", Activa: true},
			{RawName: "T VENDEDORA", CleanName: "Vendedora", Region: "NORTE", Activa: true},
			{RawName: "T LEJANA", CleanName: "Lejana", Region: "SUR", Activa: true},
		},
		movimientos: []asignacion.MovimientoVenta{
			venta("T VENDEDORA", "ABC", 5, 6),
			venta("T LEJANA", "ABC", 5, 6),
		},
		existencias: []repository.Existencia{
			{TiendaRaw: "T DORMIDA", CodBarras: "ABC", Marca: "acme", StockActual: 7},
			{TiendaRaw: "T DORMIDA", CodBarras: "ABC", Marca: "acme", StockActual: 3}, // duplicado: suma
			{TiendaRaw: "T VENDEDORA", CodBarras: "ABC", Marca: "ACME", StockActual: 1},
			{TiendaRaw: "T LEJANA", CodBarras: "ABC", Marca: "ACME", StockActual: 0},
		},
	}
}

// El excedente dormido viaja a la tienda de su región que vende; la región SUR
// no recibe nada del NORTE.
func TestCalcular_SugerenciaDentroDeRegion(t *testing.T) {
	f := repos()
	uc := redistribucion.NewUseCase(f, f, f)

	res, err := uc.Calcular(context.Background(), redistribucion.Params{Dias: 30, VentasMin: 1})
	require.NoError(t, err)
	require.Len(t, res.Sugerencias, 1)

	s := res.Sugerencias[0]
	assert.Equal(t, "Dormida", s.TiendaOrigen)
	assert.Equal(t, "Vendedora", s.TiendaDestino)
	assert.Equal(t, "NORTE", s.Region)
	assert.Equal(t, "ACME", s.Marca, "la marca se compara en mayúsculas")
	assert.Equal(t, 10, s.StockOrigen, "los duplicados de saldo colapsan por suma")
	assert.Equal(t, 3, s.CantidadSugerida, "min(excedente 6/2=3, déficit 3)")
}

// Restricción de origen a una tienda sin excedentes: resultado vacío.
func TestCalcular_OrigenSinExcedentes(t *testing.T) {
	f := repos()
	uc := redistribucion.NewUseCase(f, f, f)

	res, err := uc.Calcular(context.Background(), redistribucion.Params{
		Dias: 30, VentasMin: 1, TiendaOrigen: "Vendedora",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Sugerencias, "una tienda que vende no dona")
}

// Ventana corta que deja al origen sin ventas registradas: sigue siendo origen;
// si la ventana cubre sus ventas deja de serlo.
func TestCalcular_VentanaCambiaElOrigen(t *testing.T) {
	f := repos()
	// La dormida vendió hace 20 días.
	f.movimientos = append(f.movimientos, venta("T DORMIDA", "ABC", 20, 1))
	uc := redistribucion.NewUseCase(f, f, f)

	corta, err := uc.Calcular(context.Background(), redistribucion.Params{Dias: 10, VentasMin: 1})
	require.NoError(t, err)
	assert.Len(t, corta.Sugerencias, 1, "con ventana de 10 días la venta vieja no cuenta")

	larga, err := uc.Calcular(context.Background(), redistribucion.Params{Dias: 30, VentasMin: 1})
	require.NoError(t, err)
	assert.Empty(t, larga.Sugerencias, "con la venta dentro de la ventana la tienda deja de donar")
}

// Los movimientos malformados se cuentan y reportan, no corrompen el cruce.
func TestCalcular_ReportaMovimientosOmitidos(t *testing.T) {
	f := repos()
	f.movimientos = append(f.movimientos,
		venta("T VENDEDORA", "", 3, 2),
		venta("T DORMIDA", "", 5, 1),
	)
	uc := redistribucion.NewUseCase(f, f, f)

	res, err := uc.Calcular(context.Background(), redistribucion.Params{Dias: 30, VentasMin: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.MovimientosOmitidos)
	assert.Len(t, res.Sugerencias, 1, "las filas malformadas no alteran el cruce")
}

// Sin datos el resultado es vacío, nunca un error.
func TestCalcular_SinDatos(t *testing.T) {
	f := &fakeRepos{politica: map[string]int{"default": 4}}
	uc := redistribucion.NewUseCase(f, f, f)

	res, err := uc.Calcular(context.Background(), redistribucion.Params{Dias: 30, VentasMin: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Sugerencias)
}
