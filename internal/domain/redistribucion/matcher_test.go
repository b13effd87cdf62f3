package redistribucion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonacogo/jagi-erp/internal/domain/redistribucion"
)

func pos(tienda, region, codigo string, stock, minimo, ventas int) redistribucion.Posicion {
	return redistribucion.Posicion{
		Tienda:        tienda,
		TiendaNorm:    tienda,
		Region:        region,
		CodBarras:     codigo,
		Marca:         "ACME",
		StockActual:   stock,
		StockMinimo:   minimo,
		VentasPeriodo: ventas,
	}
}

// Caso clásico: excedente dormido en una tienda, déficit con ventas en otra de
// la misma región.
func TestEmparejar_ExcedenteContraDeficit(t *testing.T) {
	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		pos("dormida", "NORTE", "ABC", 10, 4, 0),
		pos("vendedora", "NORTE", "ABC", 1, 4, 5),
	}, 1, "")

	require.Len(t, sugerencias, 1)
	s := sugerencias[0]
	assert.Equal(t, "dormida", s.TiendaOrigen)
	assert.Equal(t, "vendedora", s.TiendaDestino)
	assert.Equal(t, 3, s.CantidadSugerida, "min(excedente/2=3, déficit=3)")
	assert.Equal(t, 10, s.StockOrigen)
	assert.Equal(t, 1, s.StockDestino)
}

// La sugerencia nunca excede la mitad del excedente del origen.
func TestEmparejar_TopeMitadDelExcedente(t *testing.T) {
	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		pos("dormida", "NORTE", "ABC", 9, 4, 0), // excedente 5
		pos("vendedora", "NORTE", "ABC", 0, 8, 3), // déficit 8
	}, 1, "")

	require.Len(t, sugerencias, 1)
	assert.Equal(t, 2, sugerencias[0].CantidadSugerida, "excedente 5 / 2 = 2")
}

// Excedente de una sola unidad sobre el mínimo: el piso de 1 aplica.
func TestEmparejar_PisoDeUnaUnidad(t *testing.T) {
	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		pos("dormida", "NORTE", "ABC", 5, 4, 0), // excedente 1, mitad 0
		pos("vendedora", "NORTE", "ABC", 1, 4, 2),
	}, 1, "")

	require.Len(t, sugerencias, 1)
	assert.Equal(t, 1, sugerencias[0].CantidadSugerida)
}

// Nunca se cruza entre regiones, aunque código y marca coincidan.
func TestEmparejar_NoCruzaRegiones(t *testing.T) {
	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		pos("dormida", "NORTE", "ABC", 10, 4, 0),
		pos("vendedora", "SUR", "ABC", 1, 4, 5),
	}, 1, "")

	assert.Empty(t, sugerencias)
}

// Una tienda con ventas en la ventana no dona aunque tenga excedente.
func TestEmparejar_OrigenConVentasNoDona(t *testing.T) {
	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		pos("activa", "NORTE", "ABC", 10, 4, 2),
		pos("vendedora", "NORTE", "ABC", 1, 4, 5),
	}, 1, "")

	assert.Empty(t, sugerencias)
}

// Una tienda fija nunca es origen de traslados.
func TestEmparejar_FijaNuncaEsOrigen(t *testing.T) {
	fija := pos("fija", "NORTE", "ABC", 10, 4, 0)
	fija.Fija = true

	sugerencias := redistribucion.Emparejar([]redistribucion.Posicion{
		fija,
		pos("vendedora", "NORTE", "ABC", 1, 4, 5),
	}, 1, "")

	assert.Empty(t, sugerencias)
}

// El destino necesita ventas >= ventasMin.
func TestEmparejar_UmbralDeVentasDelDestino(t *testing.T) {
	posiciones := []redistribucion.Posicion{
		pos("dormida", "NORTE", "ABC", 10, 4, 0),
		pos("vendedora", "NORTE", "ABC", 1, 4, 2),
	}

	assert.Len(t, redistribucion.Emparejar(posiciones, 2, ""), 1)
	assert.Empty(t, redistribucion.Emparejar(posiciones, 3, ""))
}

// Restricción de origen: solo esa tienda dona y los destinos quedan acotados a
// su región; si la tienda no tiene excedentes el resultado es vacío.
func TestEmparejar_RestriccionDeOrigen(t *testing.T) {
	posiciones := []redistribucion.Posicion{
		pos("dormida norte", "NORTE", "ABC", 10, 4, 0),
		pos("dormida sur", "SUR", "ABC", 10, 4, 0),
		pos("vendedora norte", "NORTE", "ABC", 1, 4, 5),
		pos("vendedora sur", "SUR", "ABC", 1, 4, 5),
	}

	sugerencias := redistribucion.Emparejar(posiciones, 1, "Dormida Norte")
	require.Len(t, sugerencias, 1)
	assert.Equal(t, "dormida norte", sugerencias[0].TiendaOrigen)
	assert.Equal(t, "vendedora norte", sugerencias[0].TiendaDestino)

	assert.Empty(t, redistribucion.Emparejar(posiciones, 1, "vendedora norte"),
		"una tienda sin excedentes como origen produce resultado vacío")
}

// Orden estable de salida: región, marca, código, origen.
func TestEmparejar_OrdenDeterminista(t *testing.T) {
	posiciones := []redistribucion.Posicion{
		pos("z dormida", "SUR", "BBB", 10, 4, 0),
		pos("a dormida", "NORTE", "AAA", 10, 4, 0),
		pos("vendedora sur", "SUR", "BBB", 1, 4, 5),
		pos("vendedora norte", "NORTE", "AAA", 1, 4, 5),
	}

	s1 := redistribucion.Emparejar(posiciones, 1, "")
	require.Len(t, s1, 2)
	assert.Equal(t, "NORTE", s1[0].Region)
	assert.Equal(t, "SUR", s1[1].Region)

	// Invertir la entrada no cambia la salida.
	invertido := []redistribucion.Posicion{posiciones[3], posiciones[2], posiciones[1], posiciones[0]}
	assert.Equal(t, s1, redistribucion.Emparejar(invertido, 1, ""))
}

// Sin posiciones el resultado es vacío, no un error.
func TestEmparejar_SinPosiciones(t *testing.T) {
	assert.Empty(t, redistribucion.Emparejar(nil, 1, ""))
}
