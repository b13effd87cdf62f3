// Package excel genera los libros de reabastecimiento descargables.
package excel

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// Formatos de exportación soportados.
const (
	FormatoGeneral = "general"
	FormatoPicking = "picking"
)

// Exporter genera libros XLSX a partir de filas de reabastecimiento.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

// Exportar construye el libro en el formato pedido. En formato general hay una
// hoja por tienda más una hoja Resumen; en formato picking una sola hoja
// ordenada para recorrer la bodega.
func (e *Exporter) Exportar(filas []entity.FilaReabastecimiento, formato string) ([]byte, error) {
	switch formato {
	case "", FormatoGeneral:
		return e.exportarGeneral(filas)
	case FormatoPicking:
		return e.exportarPicking(filas)
	default:
		return nil, fmt.Errorf("formato de exportación desconocido: %q", formato)
	}
}

func (e *Exporter) exportarGeneral(filas []entity.FilaReabastecimiento) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	estiloCabecera, err := estiloCabecera(f)
	if err != nil {
		return nil, err
	}

	// Hoja resumen con todas las filas.
	const hojaResumen = "Resumen"
	f.SetSheetName("Sheet1", hojaResumen)
	if err := escribirHoja(f, hojaResumen, estiloCabecera, filas, true); err != nil {
		return nil, err
	}

	// Una hoja por tienda, en orden alfabético.
	porTienda := make(map[string][]entity.FilaReabastecimiento)
	for _, fila := range filas {
		porTienda[fila.Tienda] = append(porTienda[fila.Tienda], fila)
	}
	tiendas := make([]string, 0, len(porTienda))
	for t := range porTienda {
		tiendas = append(tiendas, t)
	}
	sort.Strings(tiendas)

	for _, tienda := range tiendas {
		nombre := nombreHoja(tienda)
		if _, err := f.NewSheet(nombre); err != nil {
			return nil, fmt.Errorf("hoja %q: %w", nombre, err)
		}
		if err := escribirHoja(f, nombre, estiloCabecera, porTienda[tienda], false); err != nil {
			return nil, err
		}
	}

	return serializar(f)
}

func (e *Exporter) exportarPicking(filas []entity.FilaReabastecimiento) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	estilo, err := estiloCabecera(f)
	if err != nil {
		return nil, err
	}

	const hoja = "Picking"
	f.SetSheetName("Sheet1", hoja)

	ordenadas := make([]entity.FilaReabastecimiento, 0, len(filas))
	for _, fila := range filas {
		if fila.CantidadADespachar > 0 {
			ordenadas = append(ordenadas, fila)
		}
	}
	sort.Slice(ordenadas, func(i, j int) bool {
		a, b := ordenadas[i], ordenadas[j]
		if a.Marca != b.Marca {
			return a.Marca < b.Marca
		}
		if a.CodBarras != b.CodBarras {
			return a.CodBarras < b.CodBarras
		}
		return a.Tienda < b.Tienda
	})

	cabecera := []any{"Marca", "Código", "Color", "Tienda", "Cantidad"}
	if err := f.SetSheetRow(hoja, "A1", &cabecera); err != nil {
		return nil, fmt.Errorf("cabecera picking: %w", err)
	}
	if err := f.SetCellStyle(hoja, "A1", "E1", estilo); err != nil {
		return nil, fmt.Errorf("estilo cabecera: %w", err)
	}

	for i, fila := range ordenadas {
		celda, _ := excelize.CoordinatesToCellName(1, i+2)
		valores := []any{fila.Marca, fila.CodBarras, fila.Color, fila.Tienda, fila.CantidadADespachar}
		if err := f.SetSheetRow(hoja, celda, &valores); err != nil {
			return nil, fmt.Errorf("fila picking %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(hoja, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("congelar panel: %w", err)
	}
	anchos := map[string]float64{"A": 18, "B": 18, "C": 14, "D": 24, "E": 10}
	for colName, ancho := range anchos {
		if err := f.SetColWidth(hoja, colName, colName, ancho); err != nil {
			return nil, fmt.Errorf("ancho columna %s: %w", colName, err)
		}
	}

	return serializar(f)
}

// Cabeceras del formato general: el resumen lleva región y tienda; las hojas
// por tienda las omiten porque el nombre de la hoja ya identifica la tienda.
var (
	cabeceraResumen = []any{
		"Región", "Tienda", "Código", "Marca", "Color",
		"Ventas Período", "Stock Actual", "Stock Bodega", "Stock Mínimo",
		"Cant. a Despachar", "Observación",
	}
	cabeceraTienda = []any{
		"Código", "Marca", "Color",
		"Ventas Período", "Stock Actual", "Stock Bodega", "Stock Mínimo",
		"Cant. a Despachar", "Observación",
	}
)

func escribirHoja(f *excelize.File, hoja string, estilo int, filas []entity.FilaReabastecimiento, conRegion bool) error {
	cabecera := cabeceraTienda
	if conRegion {
		cabecera = cabeceraResumen
	}
	if err := f.SetSheetRow(hoja, "A1", &cabecera); err != nil {
		return fmt.Errorf("cabecera %q: %w", hoja, err)
	}
	ultima, _ := excelize.CoordinatesToCellName(len(cabecera), 1)
	if err := f.SetCellStyle(hoja, "A1", ultima, estilo); err != nil {
		return fmt.Errorf("estilo %q: %w", hoja, err)
	}

	for i, fila := range filas {
		celda, _ := excelize.CoordinatesToCellName(1, i+2)
		valores := []any{
			fila.CodBarras, fila.Marca, fila.Color,
			fila.VentasPeriodo, fila.StockActual, fila.StockBodega, fila.StockMinimo,
			fila.CantidadADespachar, string(fila.Observacion),
		}
		if conRegion {
			valores = append([]any{fila.Region, fila.Tienda}, valores...)
		}
		if err := f.SetSheetRow(hoja, celda, &valores); err != nil {
			return fmt.Errorf("fila %d de %q: %w", i+2, hoja, err)
		}
	}

	if err := f.SetPanes(hoja, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("congelar panel %q: %w", hoja, err)
	}
	anchos := []float64{18, 16, 14, 14, 12, 12, 12, 16, 16}
	if conRegion {
		anchos = append([]float64{14, 24}, anchos...)
	}
	for i, ancho := range anchos {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(hoja, col, col, ancho); err != nil {
			return fmt.Errorf("ancho columna %s de %q: %w", col, hoja, err)
		}
	}
	return nil
}

func estiloCabecera(f *excelize.File) (int, error) {
	estilo, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("estilo de cabecera: %w", err)
	}
	return estilo, nil
}

// nombreHoja recorta el nombre a los 31 caracteres que permite Excel y
// sustituye los caracteres prohibidos.
func nombreHoja(tienda string) string {
	limpio := make([]rune, 0, len(tienda))
	for _, r := range tienda {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			limpio = append(limpio, '-')
		default:
			limpio = append(limpio, r)
		}
	}
	if len(limpio) > 31 {
		limpio = limpio[:31]
	}
	if len(limpio) == 0 {
		return "Tienda"
	}
	return string(limpio)
}

func serializar(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
