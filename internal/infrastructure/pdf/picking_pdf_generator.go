// Package pdf implementa la generación de la lista de picking de bodega para
// una corrida de reabastecimiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de Picking + Fecha de la corrida              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR TIENDA: nombre + región                                 │
//	│  TABLA: Código | Marca | Color | Cant. | Observación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de unidades a despachar                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PickingPDFGenerator genera la lista de picking usando Maroto v2.
type PickingPDFGenerator struct{}

// NewPickingPDFGenerator construye el generador.
func NewPickingPDFGenerator() *PickingPDFGenerator { return &PickingPDFGenerator{} }

// GenerarListaPicking genera el PDF de picking y devuelve sus bytes. Solo se
// incluyen filas con cantidad a despachar mayor que cero, agrupadas por tienda.
func (g *PickingPDFGenerator) GenerarListaPicking(
	_ context.Context,
	filas []entity.FilaReabastecimiento,
	fecha time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de Picking", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	totalUnidades := 0
	for _, grupo := range agruparPorTienda(filas) {
		m.AddRows(tiendaRow(grupo.tienda, grupo.region))
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(grupo.filas) {
			m.AddRows(r)
		}
		for _, f := range grupo.filas {
			totalUnidades += f.CantidadADespachar
		}
		m.AddRows(row.New(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totalUnidades))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Agrupación ────────────────────────────────────────────────────────────────

type grupoTienda struct {
	tienda string
	region string
	filas  []entity.FilaReabastecimiento
}

// agruparPorTienda ordena y agrupa las filas con cantidad positiva por tienda.
func agruparPorTienda(filas []entity.FilaReabastecimiento) []grupoTienda {
	porTienda := make(map[string]*grupoTienda)
	for _, f := range filas {
		if f.CantidadADespachar <= 0 {
			continue
		}
		g, ok := porTienda[f.Tienda]
		if !ok {
			g = &grupoTienda{tienda: f.Tienda, region: f.Region}
			porTienda[f.Tienda] = g
		}
		g.filas = append(g.filas, f)
	}

	grupos := make([]grupoTienda, 0, len(porTienda))
	for _, g := range porTienda {
		sort.Slice(g.filas, func(i, j int) bool {
			if g.filas[i].Marca != g.filas[j].Marca {
				return g.filas[i].Marca < g.filas[j].Marca
			}
			return g.filas[i].CodBarras < g.filas[j].CodBarras
		})
		grupos = append(grupos, *g)
	}
	sort.Slice(grupos, func(i, j int) bool {
		if grupos[i].region != grupos[j].region {
			return grupos[i].region < grupos[j].region
		}
		return grupos[i].tienda < grupos[j].tienda
	})
	return grupos
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha de la corrida.
func headerRow(fecha time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("LISTA DE PICKING — BODEGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de despacho por tienda", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tiendaRow: cabecera de cada sección de tienda.
func tiendaRow(tienda, region string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(tienda, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
			text.New("Región: "+nonEmpty(region, "—"), props.Text{
				Size: 8, Top: 2, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de despacho.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Código", 3, align.Left),
		h("Marca", 3, align.Left),
		h("Color", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Observación", 3, align.Left),
	)
}

// tableDetailRows: una fila por código a despachar.
func tableDetailRows(filas []entity.FilaReabastecimiento) []core.Row {
	result := make([]core.Row, 0, len(filas))
	for _, f := range filas {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(
				f.CodBarras,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				f.Marca,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				f.Color,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", f.CantidadADespachar),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				string(f.Observacion),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRow: total de unidades a despachar.
func totalsRow(total int) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("TOTAL UNIDADES A DESPACHAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 2,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Left,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
