// Package importer carga los archivos CSV exportados del sistema POS hacia
// las tablas crudas que consumen los cálculos.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jonacogo/jagi-erp/internal/infrastructure/postgres"
	"github.com/jonacogo/jagi-erp/pkg/logger"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Resultado resumen de una carga: filas insertadas y descartadas.
type Resultado struct {
	Tabla      string
	Insertadas int
	Omitidas   int
}

// Loader ejecuta las cargas contra la base. Cada carga recrea la tabla cruda
// destino, el archivo es la fuente de verdad completa.
type Loader struct {
	q   postgres.Querier
	log *logger.Logger
}

func NewLoader(q postgres.Querier, log *logger.Logger) *Loader {
	return &Loader{q: q, log: log}
}

// ── cargas ────────────────────────────────────────────────────────────────────

// CargarVentasSaldos carga el snapshot de saldos por tienda.
// Columnas esperadas: tienda, cod_barras, marca, color, saldo.
func (l *Loader) CargarVentasSaldos(ctx context.Context, r io.Reader) (Resultado, error) {
	schema := `CREATE TABLE ventas_saldos_raw (
		tienda TEXT, cod_barras TEXT, marca TEXT, color TEXT, saldo INTEGER
	)`
	insert := `INSERT INTO ventas_saldos_raw (tienda, cod_barras, marca, color, saldo)
		VALUES ($1, $2, $3, $4, $5)`

	return l.cargar(ctx, r, "ventas_saldos_raw", schema,
		[]string{"tienda", "cod barras", "marca", "color", "saldo"},
		func(campos map[string]string) ([]any, bool) {
			codigo := textutil.Codigo(campos["cod barras"])
			if codigo == "" || campos["tienda"] == "" {
				return nil, false
			}
			saldo, ok := entero(campos["saldo"])
			if !ok {
				return nil, false
			}
			return []any{
				strings.TrimSpace(campos["tienda"]), codigo,
				marcaODefecto(campos["marca"]), colorODefecto(campos["color"]), saldo,
			}, true
		}, insert)
}

// CargarBodega carga el inventario de la bodega central.
// Columnas esperadas: cod_barras, saldo.
func (l *Loader) CargarBodega(ctx context.Context, r io.Reader) (Resultado, error) {
	schema := `CREATE TABLE inventario_bodega_raw (cod_barras TEXT, saldo INTEGER)`
	insert := `INSERT INTO inventario_bodega_raw (cod_barras, saldo) VALUES ($1, $2)`

	return l.cargar(ctx, r, "inventario_bodega_raw", schema,
		[]string{"cod barras", "saldo"},
		func(campos map[string]string) ([]any, bool) {
			codigo := textutil.Codigo(campos["cod barras"])
			if codigo == "" {
				return nil, false
			}
			saldo, ok := entero(campos["saldo"])
			if !ok {
				return nil, false
			}
			return []any{codigo, saldo}, true
		}, insert)
}

// CargarHistorico carga los movimientos de venta.
// Columnas esperadas: tienda, cod_barras, marca, fecha, cantidad.
func (l *Loader) CargarHistorico(ctx context.Context, r io.Reader) (Resultado, error) {
	schema := `CREATE TABLE ventas_historico_raw (
		tienda TEXT, cod_barras TEXT, marca TEXT, fecha DATE, cantidad NUMERIC
	)`
	insert := `INSERT INTO ventas_historico_raw (tienda, cod_barras, marca, fecha, cantidad)
		VALUES ($1, $2, $3, $4, $5)`

	return l.cargar(ctx, r, "ventas_historico_raw", schema,
		[]string{"tienda", "cod barras", "marca", "fecha", "cantidad"},
		func(campos map[string]string) ([]any, bool) {
			codigo := textutil.Codigo(campos["cod barras"])
			if codigo == "" || campos["tienda"] == "" {
				return nil, false
			}
			fecha, ok := parseFecha(campos["fecha"])
			if !ok {
				return nil, false
			}
			cantidad, err := decimal.NewFromString(normalizarNumero(campos["cantidad"]))
			if err != nil {
				return nil, false
			}
			return []any{
				strings.TrimSpace(campos["tienda"]), codigo,
				marcaODefecto(campos["marca"]), fecha, cantidad,
			}, true
		}, insert)
}

// CargarConfigTiendas carga el catálogo de tiendas.
// Columnas esperadas: raw_name, clean_name, region, fija, tipo_tienda, activa.
func (l *Loader) CargarConfigTiendas(ctx context.Context, r io.Reader) (Resultado, error) {
	schema := `CREATE TABLE config_tiendas (
		raw_name TEXT, clean_name TEXT, region TEXT,
		fija INTEGER, tipo_tienda TEXT, activa INTEGER
	)`
	insert := `INSERT INTO config_tiendas (raw_name, clean_name, region, fija, tipo_tienda, activa)
		VALUES ($1, $2, $3, $4, $5, $6)`

	return l.cargar(ctx, r, "config_tiendas", schema,
		[]string{"raw name", "clean name", "region", "fija", "tipo tienda", "activa"},
		func(campos map[string]string) ([]any, bool) {
			raw := strings.TrimSpace(campos["raw name"])
			clean := strings.TrimSpace(campos["clean name"])
			if raw == "" && clean == "" {
				return nil, false
			}
			if clean == "" {
				clean = raw
			}
			fija := bandera(campos["fija"])
			activa := 1
			if v := strings.TrimSpace(campos["activa"]); v != "" {
				activa = bandera(v)
			}
			return []any{
				raw, clean, strings.TrimSpace(campos["region"]),
				fija, strings.TrimSpace(campos["tipo tienda"]), activa,
			}, true
		}, insert)
}

// CargarListaCodigos carga una tabla de una sola columna de códigos (fijas o
// exclusiones). tabla y columna van embebidas en el SQL, no aceptar entrada
// externa aquí.
func (l *Loader) CargarListaCodigos(ctx context.Context, r io.Reader, tabla, columna string) (Resultado, error) {
	schema := fmt.Sprintf(`CREATE TABLE %s (%s TEXT)`, tabla, columna)
	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`, tabla, columna)
	cabecera := strings.ReplaceAll(columna, "_", " ")

	return l.cargar(ctx, r, tabla, schema,
		[]string{cabecera},
		func(campos map[string]string) ([]any, bool) {
			v := strings.TrimSpace(campos[cabecera])
			if v == "" {
				return nil, false
			}
			return []any{v}, true
		}, insert)
}

// CargarStockMinimo carga la política de mínimos por tipo de tienda.
// Columnas esperadas: tipo, cantidad.
func (l *Loader) CargarStockMinimo(ctx context.Context, r io.Reader) (Resultado, error) {
	schema := `CREATE TABLE stock_minimo_config (tipo TEXT, cantidad INTEGER)`
	insert := `INSERT INTO stock_minimo_config (tipo, cantidad) VALUES ($1, $2)`

	return l.cargar(ctx, r, "stock_minimo_config", schema,
		[]string{"tipo", "cantidad"},
		func(campos map[string]string) ([]any, bool) {
			tipo := strings.ToLower(strings.TrimSpace(campos["tipo"]))
			if tipo == "" {
				return nil, false
			}
			cantidad, ok := entero(campos["cantidad"])
			if !ok || cantidad < 0 {
				return nil, false
			}
			return []any{tipo, cantidad}, true
		}, insert)
}

// ── mecánica común ────────────────────────────────────────────────────────────

// cargar recrea la tabla y vuelca el CSV fila por fila. Los archivos del POS
// vienen en latin-1 con `;` como separador.
func (l *Loader) cargar(
	ctx context.Context,
	r io.Reader,
	tabla, schema string,
	columnas []string,
	mapear func(map[string]string) ([]any, bool),
	insert string,
) (Resultado, error) {
	res := Resultado{Tabla: tabla}

	lector := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	lector.Comma = ';'
	lector.FieldsPerRecord = -1
	lector.TrimLeadingSpace = true

	cabecera, err := lector.Read()
	if err != nil {
		return res, fmt.Errorf("leer cabecera de %s: %w", tabla, err)
	}
	indices, err := mapearCabecera(cabecera, columnas)
	if err != nil {
		return res, fmt.Errorf("%s: %w", tabla, err)
	}

	if _, err := l.q.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tabla)); err != nil {
		return res, fmt.Errorf("recrear %s: %w", tabla, err)
	}
	if _, err := l.q.Exec(ctx, schema); err != nil {
		return res, fmt.Errorf("crear %s: %w", tabla, err)
	}

	for {
		registro, err := lector.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Omitidas++
			continue
		}

		campos := make(map[string]string, len(columnas))
		for nombre, idx := range indices {
			if idx < len(registro) {
				campos[nombre] = registro[idx]
			}
		}
		valores, ok := mapear(campos)
		if !ok {
			res.Omitidas++
			continue
		}
		if _, err := l.q.Exec(ctx, insert, valores...); err != nil {
			return res, fmt.Errorf("insertar en %s: %w", tabla, err)
		}
		res.Insertadas++
	}

	l.log.Info().
		Str("tabla", tabla).
		Int("insertadas", res.Insertadas).
		Int("omitidas", res.Omitidas).
		Msg("carga completada")
	return res, nil
}

// mapearCabecera localiza cada columna esperada en la cabecera real usando la
// misma normalización que el resto del sistema, así "Cód. Barras" y
// "cod_barras" resuelven a la misma columna.
func mapearCabecera(cabecera, esperadas []string) (map[string]int, error) {
	normalizadas := make(map[string]int, len(cabecera))
	for i, c := range cabecera {
		c = strings.NewReplacer("_", " ", ".", " ").Replace(c)
		normalizadas[textutil.Normalizar(c)] = i
	}

	indices := make(map[string]int, len(esperadas))
	for _, col := range esperadas {
		idx, ok := normalizadas[textutil.Normalizar(col)]
		if !ok {
			return nil, fmt.Errorf("columna %q no encontrada en la cabecera", col)
		}
		indices[col] = idx
	}
	return indices, nil
}

func entero(s string) (int, bool) {
	s = normalizarNumero(s)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return int(d.IntPart()), true
}

// normalizarNumero acepta coma decimal y separadores de miles del POS.
func normalizarNumero(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

func bandera(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "si", "sí", "true", "x":
		return 1
	default:
		return 0
	}
}

var formatosFecha = []string{"2006-01-02", "02/01/2006", "2/1/2006", "2006-01-02 15:04:05"}

func parseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func marcaODefecto(s string) string {
	if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
		return s
	}
	return "SIN MARCA"
}

func colorODefecto(s string) string {
	if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
		return s
	}
	return "SIN COLOR"
}
