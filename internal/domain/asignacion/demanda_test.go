package asignacion_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

var hoy = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func registroDePrueba() *asignacion.RegistroTiendas {
	return asignacion.NuevoRegistroTiendas([]entity.Tienda{
		{RawName: "TIENDA NORTE 01", CleanName: "Norte", Region: "NORTE", Activa: true},
		{RawName: "TIENDA SUR 02", CleanName: "Sur", Region: "SUR", Activa: true},
		{RawName: "BODEGA JAGI", CleanName: "Bodega Jagi", Region: "CENTRO", Activa: true},
	})
}

func mov(tienda, codigo string, dias int, cantidad string) asignacion.MovimientoVenta {
	return asignacion.MovimientoVenta{
		TiendaRaw: tienda,
		CodBarras: codigo,
		Fecha:     hoy.AddDate(0, 0, -dias),
		Cantidad:  decimal.RequireFromString(cantidad),
	}
}

// Los duplicados del mismo par (tienda, código) colapsan por suma, con la
// tienda resuelta a su nombre canónico.
func TestAgregarDemanda_ColapsaDuplicados(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("TIENDA NORTE 01", "ABC", 1, "2"),
		mov("tienda norte 01", "abc", 3, "3"),
		mov("Norte", "ABC", 5, "1"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 6, demanda.Ventas("norte", "ABC"),
		"raw_name y clean_name deben sumar al mismo agregado")
	assert.Equal(t, 0, demanda.Omitidas)
}

// Movimientos anteriores a la ventana no cuentan.
func TestAgregarDemanda_RespetaVentana(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("Norte", "ABC", 2, "4"),
		mov("Norte", "ABC", 30, "100"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 4, demanda.Ventas("norte", "ABC"))
}

// Filas sin fecha o sin código se cuentan como omitidas, no rompen la corrida.
func TestAgregarDemanda_FilasMalformadas(t *testing.T) {
	sinFecha := mov("Norte", "ABC", 0, "1")
	sinFecha.Fecha = time.Time{}

	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		sinFecha,
		mov("Norte", "   ", 1, "2"),
		mov("Norte", "ABC", 1, "3"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 2, demanda.Omitidas)
	assert.Equal(t, 3, demanda.Ventas("norte", "ABC"))
}

// La bodega central no genera demanda de tienda.
func TestAgregarDemanda_ExcluyeBodega(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("BODEGA JAGI", "ABC", 1, "50"),
		mov("bodega jagi pereira", "ABC", 1, "50"),
		mov("Sur", "ABC", 1, "2"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 0, demanda.Ventas("bodega jagi", "ABC"))
	assert.Equal(t, 2, demanda.Ventas("sur", "ABC"))
}

// Totales negativos (devoluciones que superan las ventas) se recortan a cero
// en la frontera; además la parte decimal se trunca al convertir a entero.
func TestAgregarDemanda_CoercionEntera(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("Norte", "NEG", 1, "2"),
		mov("Norte", "NEG", 2, "-5"),
		mov("Sur", "DEC", 1, "3.9"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 0, demanda.Ventas("norte", "NEG"), "total negativo se recorta a cero")
	assert.Equal(t, 3, demanda.Ventas("sur", "DEC"), "la coerción trunca, no redondea")
}

// Tiendas fuera del registro igual agregan, bajo su nombre crudo normalizado.
func TestAgregarDemanda_TiendaSinMapeo(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("Kiosco Feria", "ABC", 1, "2"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	assert.Equal(t, 2, demanda.Ventas("kiosco feria", "ABC"))
}

func TestTotalesPorCodigo(t *testing.T) {
	demanda := asignacion.AgregarDemanda([]asignacion.MovimientoVenta{
		mov("Norte", "ABC", 1, "2"),
		mov("Sur", "ABC", 1, "3"),
		mov("Sur", "XYZ", 1, "1"),
	}, hoy.AddDate(0, 0, -10), registroDePrueba())

	totales := demanda.TotalesPorCodigo()
	assert.Equal(t, 5, totales["ABC"])
	assert.Equal(t, 1, totales["XYZ"])
}
