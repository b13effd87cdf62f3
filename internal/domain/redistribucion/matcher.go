// Package redistribucion empareja tiendas con excedente dormido contra
// tiendas de su misma región que venden el ítem y están bajo su mínimo.
package redistribucion

import (
	"sort"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Posicion stock y ventas de un ítem en una tienda, con el mínimo ya resuelto.
type Posicion struct {
	Tienda        string // nombre canónico
	TiendaNorm    string
	Region        string
	Fija          bool
	CodBarras     string
	Marca         string
	StockActual   int
	StockMinimo   int
	VentasPeriodo int
}

type claveItem struct {
	Region    string
	CodBarras string
	Marca     string
}

// Emparejar produce las sugerencias de traslado. Reglas:
//   - Origen: stock > mínimo, cero ventas en la ventana y tienda no fija.
//   - Destino: stock < mínimo y ventas >= ventasMin.
//   - Si tiendaOrigen no es vacío, solo esa tienda dona; sin excedentes allí el
//     resultado es vacío y los destinos se restringen a su región.
//   - El cruce es por (región, código, marca); nunca entre regiones.
//   - sugerida = max(1, min(excedente/2, déficit)). La división entera por dos
//     limita cada traslado a la mitad del excedente del origen; varios destinos
//     sobre el mismo origen/ítem pueden sumar más que el excedente real, y eso
//     se conserva como comportamiento del heurístico.
//
// Un conjunto vacío de orígenes o destinos es un resultado normal "sin
// oportunidades", nunca un error.
func Emparejar(posiciones []Posicion, ventasMin int, tiendaOrigen string) []entity.SugerenciaRedistribucion {
	var origenes, destinos []Posicion
	for _, p := range posiciones {
		if p.StockActual > p.StockMinimo && p.VentasPeriodo == 0 && !p.Fija {
			origenes = append(origenes, p)
		}
		if p.StockActual < p.StockMinimo && p.VentasPeriodo >= ventasMin {
			destinos = append(destinos, p)
		}
	}

	if tiendaOrigen != "" {
		origenNorm := textutil.Normalizar(tiendaOrigen)
		filtrado := origenes[:0]
		for _, o := range origenes {
			if o.TiendaNorm == origenNorm {
				filtrado = append(filtrado, o)
			}
		}
		origenes = filtrado
		if len(origenes) == 0 {
			return nil
		}
		region := origenes[0].Region
		filtradoDest := destinos[:0]
		for _, d := range destinos {
			if d.Region == region {
				filtradoDest = append(filtradoDest, d)
			}
		}
		destinos = filtradoDest
	}

	destinosPorItem := make(map[claveItem][]Posicion)
	for _, d := range destinos {
		k := claveItem{Region: d.Region, CodBarras: d.CodBarras, Marca: d.Marca}
		destinosPorItem[k] = append(destinosPorItem[k], d)
	}

	var sugerencias []entity.SugerenciaRedistribucion
	for _, o := range origenes {
		k := claveItem{Region: o.Region, CodBarras: o.CodBarras, Marca: o.Marca}
		for _, d := range destinosPorItem[k] {
			excedente := o.StockActual - o.StockMinimo
			deficit := d.StockMinimo - d.StockActual
			if excedente <= 0 || deficit <= 0 {
				continue
			}
			sugerida := excedente / 2
			if deficit < sugerida {
				sugerida = deficit
			}
			if sugerida < 1 {
				sugerida = 1
			}
			sugerencias = append(sugerencias, entity.SugerenciaRedistribucion{
				Region:           o.Region,
				CodBarras:        o.CodBarras,
				Marca:            o.Marca,
				TiendaOrigen:     o.Tienda,
				TiendaDestino:    d.Tienda,
				StockOrigen:      o.StockActual,
				StockDestino:     d.StockActual,
				CantidadSugerida: sugerida,
			})
		}
	}

	sort.SliceStable(sugerencias, func(i, j int) bool {
		a, b := sugerencias[i], sugerencias[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Marca != b.Marca {
			return a.Marca < b.Marca
		}
		if a.CodBarras != b.CodBarras {
			return a.CodBarras < b.CodBarras
		}
		return a.TiendaOrigen < b.TiendaOrigen
	})
	return sugerencias
}
