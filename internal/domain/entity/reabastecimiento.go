package entity

// Observacion estado final de una fila del plan de distribución.
type Observacion string

const (
	// ObservacionOK la tienda no necesita unidades; la fila se descarta de la salida.
	ObservacionOK Observacion = "OK"
	// ObservacionReabastecer la bodega cubre (total o parcialmente) la necesidad.
	ObservacionReabastecer Observacion = "REABASTECER"
	// ObservacionCompra hay necesidad pero la bodega no alcanzó a asignar nada.
	ObservacionCompra Observacion = "COMPRA"
	// ObservacionExpansion fila sintética: la tienda no maneja el código pero vende bien en otras.
	ObservacionExpansion Observacion = "EXPANSION"
	// ObservacionNuevo fila sintética de introducción de código nuevo (asignación forzada).
	ObservacionNuevo Observacion = "NUEVO"
)

// FilaReabastecimiento fila del plan de reabastecimiento/expansión.
// CantidadAsignada y StockBodegaRestante los escribe el motor de asignación
// exactamente una vez; el resto de campos no cambia después de construida.
type FilaReabastecimiento struct {
	Region              string
	Tienda              string // nombre canónico
	CodBarras           string
	Marca               string
	Color               string
	VentasPeriodo       int // ventas en la ventana de reabastecimiento
	StockActual         int
	StockBodega         int // stock de bodega al inicio del pase del ítem
	StockBodegaRestante int
	StockMinimo         int
	CantidadADespachar  int // solicitado = max(mínimo - stock actual, 0)
	CantidadAsignada    int
	Observacion         Observacion
}
