package asignacion

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// MovimientoVenta fila cruda del histórico de ventas (ventas_historico_raw).
// La cantidad llega como NUMERIC de la base; la coerción a entero ocurre aquí,
// en la frontera de agregación, no en la presentación.
type MovimientoVenta struct {
	TiendaRaw string
	CodBarras string
	Marca     string
	Fecha     time.Time
	Cantidad  decimal.Decimal
}

// ClaveDemanda identifica un agregado (tienda canónica normalizada, código).
type ClaveDemanda struct {
	TiendaNorm string
	CodBarras  string
}

// Demanda resultado de agregar ventas en una ventana.
type Demanda struct {
	Totales map[ClaveDemanda]int
	// Omitidas filas malformadas (sin fecha o sin código) rechazadas en la
	// frontera; se reportan al llamador en vez de corromper los totales.
	Omitidas int
}

// Ventas devuelve el total agregado para una tienda/código (0 si no hay ventas).
func (d Demanda) Ventas(tiendaNorm, codBarras string) int {
	return d.Totales[ClaveDemanda{TiendaNorm: tiendaNorm, CodBarras: textutil.Codigo(codBarras)}]
}

// AgregarDemanda suma los movimientos cuya fecha cae en [desde, ahora], con la
// tienda ya canonicalizada vía el registro. Los duplicados de un mismo par
// (tienda, código) colapsan por suma; las filas de la bodega central se
// excluyen; los totales negativos se recortan a cero.
func AgregarDemanda(movimientos []MovimientoVenta, desde time.Time, registro *RegistroTiendas) Demanda {
	parciales := make(map[ClaveDemanda]decimal.Decimal)
	omitidas := 0

	for _, m := range movimientos {
		if m.Fecha.IsZero() || textutil.Codigo(m.CodBarras) == "" {
			omitidas++
			continue
		}
		if m.Fecha.Before(desde) {
			continue
		}
		if registro.EsBodega(m.TiendaRaw) {
			continue
		}
		tienda := registro.Resolver(m.TiendaRaw)
		clave := ClaveDemanda{
			TiendaNorm: textutil.Normalizar(tienda.CleanName),
			CodBarras:  textutil.Codigo(m.CodBarras),
		}
		parciales[clave] = parciales[clave].Add(m.Cantidad)
	}

	totales := make(map[ClaveDemanda]int, len(parciales))
	for clave, suma := range parciales {
		n := int(suma.IntPart())
		if n < 0 {
			n = 0
		}
		totales[clave] = n
	}
	return Demanda{Totales: totales, Omitidas: omitidas}
}

// TotalesPorCodigo colapsa la demanda a nivel de código (suma entre tiendas).
func (d Demanda) TotalesPorCodigo() map[string]int {
	porCodigo := make(map[string]int)
	for clave, n := range d.Totales {
		porCodigo[clave.CodBarras] += n
	}
	return porCodigo
}
