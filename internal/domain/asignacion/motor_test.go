package asignacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

func candidato(tienda string, fija bool, ventas, solicitado int) asignacion.Candidato {
	return asignacion.Candidato{
		Tienda:     tienda,
		TiendaNorm: tienda,
		Fija:       fija,
		Ventas:     ventas,
		Solicitado: solicitado,
	}
}

func porTienda(asignados []asignacion.Asignado) map[string]int {
	m := make(map[string]int, len(asignados))
	for _, a := range asignados {
		m[a.Tienda] = a.Cantidad
	}
	return m
}

// Caso clásico: la bodega no alcanza para todos y las tiendas con más ventas
// ganan; la última en prioridad queda corta.
func TestAsignarItem_BodegaInsuficiente_PrioridadPorVentas(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("norte", false, 8, 4),
		candidato("centro", false, 2, 4),
		candidato("sur", false, 5, 4),
	}

	asignados, restante := asignacion.AsignarItem(10, candidatos, asignacion.ModoBase)
	require.Len(t, asignados, 3)

	got := porTienda(asignados)
	assert.Equal(t, 4, got["norte"], "la tienda con más ventas recibe completo")
	assert.Equal(t, 4, got["sur"], "la segunda en ventas recibe completo")
	assert.Equal(t, 2, got["centro"], "la última recibe solo el remanente")
	assert.Equal(t, 0, restante)
}

// La suma asignada nunca excede lo disponible en modo base.
func TestAsignarItem_ConservacionDeStock(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("a", false, 9, 7),
		candidato("b", true, 1, 6),
		candidato("c", false, 3, 5),
		candidato("d", false, 0, 2),
	}

	for _, disponible := range []int{0, 1, 5, 11, 50} {
		asignados, restante := asignacion.AsignarItem(disponible, candidatos, asignacion.ModoBase)
		total := 0
		for _, a := range asignados {
			total += a.Cantidad
		}
		assert.Equal(t, disponible, total+restante,
			"asignado+restante debe conservar lo disponible (disponible=%d)", disponible)
		assert.LessOrEqual(t, total, disponible)
	}
}

// Una tienda fija va antes que cualquier no fija aunque venda menos: la
// comparación es lexicográfica, no una suma ponderada.
func TestAsignarItem_FijaSiemprePrimero(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("gigante no fija", false, 1000, 3),
		candidato("fija chica", true, 0, 3),
	}

	asignados, _ := asignacion.AsignarItem(3, candidatos, asignacion.ModoBase)
	got := porTienda(asignados)
	assert.Equal(t, 3, got["fija chica"], "la fija consume primero")
	assert.Equal(t, 0, got["gigante no fija"])
}

// Empate total (fija y ventas iguales): desempata el nombre normalizado
// ascendente y el resultado es el mismo sin importar el orden de entrada.
func TestAsignarItem_DesempateDeterminista(t *testing.T) {
	a := candidato("almacen a", false, 5, 2)
	b := candidato("almacen b", false, 5, 2)

	r1, _ := asignacion.AsignarItem(2, []asignacion.Candidato{a, b}, asignacion.ModoBase)
	r2, _ := asignacion.AsignarItem(2, []asignacion.Candidato{b, a}, asignacion.ModoBase)

	assert.Equal(t, porTienda(r1), porTienda(r2),
		"el reparto no puede depender del orden de llegada")
	assert.Equal(t, 2, porTienda(r1)["almacen a"], "gana el nombre menor")
	assert.Equal(t, 0, porTienda(r1)["almacen b"])
}

// Solicitado cero o negativo no consume bodega.
func TestAsignarItem_SinNecesidadNoConsume(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("llena", false, 10, 0),
		candidato("sobrada", false, 9, -3),
		candidato("corta", false, 1, 4),
	}

	asignados, restante := asignacion.AsignarItem(5, candidatos, asignacion.ModoBase)
	got := porTienda(asignados)
	assert.Equal(t, 0, got["llena"])
	assert.Equal(t, 0, got["sobrada"])
	assert.Equal(t, 4, got["corta"])
	assert.Equal(t, 1, restante)
}

// Disponible negativo se trata como cero.
func TestAsignarItem_DisponibleNegativo(t *testing.T) {
	asignados, restante := asignacion.AsignarItem(-7, []asignacion.Candidato{
		candidato("x", false, 3, 2),
	}, asignacion.ModoBase)

	assert.Equal(t, 0, asignados[0].Cantidad)
	assert.Equal(t, 0, restante)
}

// En modo expansión el reparto se corta al agotarse la bodega, igual que base.
func TestAsignarItem_ExpansionSeDetieneAlAgotarse(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("a", false, 6, 4),
		candidato("b", false, 4, 4),
		candidato("c", false, 2, 4),
	}

	asignados, restante := asignacion.AsignarItem(6, candidatos, asignacion.ModoExpansion)
	got := porTienda(asignados)
	assert.Equal(t, 4, got["a"])
	assert.Equal(t, 2, got["b"])
	assert.Equal(t, 0, got["c"], "sin stock no hay asignación en expansión")
	assert.Equal(t, 0, restante)
}

// En modo nuevo las tiendas sin stock igual quedan con la cantidad solicitada:
// es la asignación teórica que compras debe cubrir.
func TestAsignarItem_NuevoForzadoConBodegaAgotada(t *testing.T) {
	candidatos := []asignacion.Candidato{
		candidato("a", false, 6, 4),
		candidato("b", false, 4, 4),
		candidato("c", false, 2, 4),
	}

	asignados, restante := asignacion.AsignarItem(5, candidatos, asignacion.ModoNuevo)
	got := porTienda(asignados)
	assert.Equal(t, 4, got["a"])
	assert.Equal(t, 1, got["b"], "recibe lo que queda de bodega")
	assert.Equal(t, 4, got["c"], "forzado a lo solicitado con bodega en cero")
	assert.Equal(t, 0, restante)
}

func TestObservacionBase(t *testing.T) {
	assert.Equal(t, entity.ObservacionOK, asignacion.ObservacionBase(0, 0),
		"sin faltante la fila queda OK")
	assert.Equal(t, entity.ObservacionReabastecer, asignacion.ObservacionBase(3, 2),
		"con algo asignado la fila es REABASTECER")
	assert.Equal(t, entity.ObservacionCompra, asignacion.ObservacionBase(3, 0),
		"faltante sin bodega es COMPRA")
}
