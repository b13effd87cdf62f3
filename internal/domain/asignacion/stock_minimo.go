package asignacion

import (
	"strings"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Mínimos literales cuando la categoría no existe en stock_minimo_config.
// Una tabla de política vacía nunca es un error: aplican estos valores.
const (
	minimoFijo       = 5
	minimoMultimarca = 2
	minimoJuego      = 3
	minimoDefault    = 4
)

// ReglasStockMinimo resuelve el stock mínimo dinámico de un (código, marca, tienda).
// Es un valor puro: se construye una vez por corrida y solo se lee.
type ReglasStockMinimo struct {
	politica         map[string]int
	referenciasFijas map[string]struct{}
	marcasMultimarca map[string]struct{}
}

// NuevasReglasStockMinimo construye el resolvedor. Las claves de la política se
// guardan en minúsculas; códigos y marcas en mayúsculas.
func NuevasReglasStockMinimo(politica map[string]int, referenciasFijas, marcasMultimarca []string) ReglasStockMinimo {
	r := ReglasStockMinimo{
		politica:         make(map[string]int, len(politica)),
		referenciasFijas: make(map[string]struct{}, len(referenciasFijas)),
		marcasMultimarca: make(map[string]struct{}, len(marcasMultimarca)),
	}
	for categoria, cantidad := range politica {
		r.politica[strings.ToLower(strings.TrimSpace(categoria))] = cantidad
	}
	for _, c := range referenciasFijas {
		if c = textutil.Codigo(c); c != "" {
			r.referenciasFijas[c] = struct{}{}
		}
	}
	for _, m := range marcasMultimarca {
		if m = textutil.Codigo(m); m != "" {
			r.marcasMultimarca[m] = struct{}{}
		}
	}
	return r
}

// EsReferenciaFija reporta si el código pertenece al set de referencias fijas.
func (r ReglasStockMinimo) EsReferenciaFija(codBarras string) bool {
	_, ok := r.referenciasFijas[textutil.Codigo(codBarras)]
	return ok
}

// StockMinimo aplica las reglas en orden; gana la primera que cumpla:
//  1. referencia fija → fijo_especial si la tienda es fija, fijo_normal si no
//  2. marca multimarca → multimarca
//  3. código o marca contiene JGL → jgl
//  4. código o marca contiene JGM → jgm
//  5. resto → default (o su alias general)
func (r ReglasStockMinimo) StockMinimo(codBarras, marca string, tiendaFija bool) int {
	codigo := textutil.Codigo(codBarras)
	marcaUp := textutil.Codigo(marca)

	if _, ok := r.referenciasFijas[codigo]; ok {
		categoria := entity.CategoriaFijoNormal
		if tiendaFija {
			categoria = entity.CategoriaFijoEspecial
		}
		return r.cantidad(minimoFijo, categoria)
	}
	if _, ok := r.marcasMultimarca[marcaUp]; ok {
		return r.cantidad(minimoMultimarca, entity.CategoriaMultimarca)
	}
	if strings.Contains(codigo, "JGL") || strings.Contains(marcaUp, "JGL") {
		return r.cantidad(minimoJuego, entity.CategoriaJGL)
	}
	if strings.Contains(codigo, "JGM") || strings.Contains(marcaUp, "JGM") {
		return r.cantidad(minimoJuego, entity.CategoriaJGM)
	}
	return r.cantidad(minimoDefault, entity.CategoriaDefault, entity.CategoriaGeneral)
}

// MinimoDefault mínimo de la categoría default (el que usan las filas de expansión).
func (r ReglasStockMinimo) MinimoDefault() int {
	return r.cantidad(minimoDefault, entity.CategoriaDefault, entity.CategoriaGeneral)
}

func (r ReglasStockMinimo) cantidad(fallback int, categorias ...string) int {
	for _, c := range categorias {
		if q, ok := r.politica[c]; ok {
			return q
		}
	}
	return fallback
}
