package asignacion

import (
	"sort"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// Modo controla cómo reparte el motor cuando la bodega se agota.
type Modo int

const (
	// ModoBase reabastecimiento normal: solo asigna mientras quede stock.
	ModoBase Modo = iota
	// ModoExpansion filas sintéticas de expansión: igual que base, se detiene al agotarse.
	ModoExpansion
	// ModoNuevo introducciones: con bodega agotada la fila queda asignada a lo
	// solicitado de todas formas (asignación teórica que compras debe conciliar).
	ModoNuevo
)

// Candidato demanda de una tienda por un ítem dentro de un pase de asignación.
type Candidato struct {
	Tienda     string // nombre canónico
	TiendaNorm string // clave de desempate determinista
	Fija       bool
	Ventas     int // ventas en la ventana de reabastecimiento
	Solicitado int
}

// Asignado resultado del motor para un candidato.
type Asignado struct {
	Candidato
	Cantidad int
}

// AsignarItem reparte `disponible` unidades de bodega de UN ítem entre sus
// candidatos. El acumulador de stock restante vive solo dentro de esta función
// y se devuelve explícitamente: nunca se comparte entre ítems.
//
// Orden de prioridad: tiendas fijas antes que no fijas, luego más ventas,
// y empates por nombre normalizado ascendente. La comparación es lexicográfica
// (fija, ventas) y no una suma ponderada, así una tienda fija siempre queda por
// encima sin importar el volumen de ventas del resto.
//
// La suma de cantidades asignadas nunca excede `disponible` (salvo las filas
// forzadas de ModoNuevo, que por contrato pueden sobrecomprometer).
func AsignarItem(disponible int, candidatos []Candidato, modo Modo) ([]Asignado, int) {
	restante := disponible
	if restante < 0 {
		restante = 0
	}

	orden := make([]Candidato, len(candidatos))
	copy(orden, candidatos)
	sort.SliceStable(orden, func(i, j int) bool {
		a, b := orden[i], orden[j]
		if a.Fija != b.Fija {
			return a.Fija
		}
		if a.Ventas != b.Ventas {
			return a.Ventas > b.Ventas
		}
		return a.TiendaNorm < b.TiendaNorm
	})

	resultado := make([]Asignado, 0, len(orden))
	for _, c := range orden {
		cantidad := 0
		switch {
		case c.Solicitado <= 0:
			// sin necesidad, no consume bodega
		case restante > 0:
			cantidad = c.Solicitado
			if cantidad > restante {
				cantidad = restante
			}
			restante -= cantidad
		case modo == ModoNuevo:
			cantidad = c.Solicitado
		}
		resultado = append(resultado, Asignado{Candidato: c, Cantidad: cantidad})
	}
	return resultado, restante
}

// ObservacionBase etiqueta una fila del pase base después de asignar.
func ObservacionBase(solicitado, asignado int) entity.Observacion {
	switch {
	case solicitado == 0:
		return entity.ObservacionOK
	case asignado > 0:
		return entity.ObservacionReabastecer
	default:
		return entity.ObservacionCompra
	}
}
