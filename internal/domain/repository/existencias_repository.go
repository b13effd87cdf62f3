package repository

import "context"

// Existencia saldo disponible de un código en una tienda (ventas_saldos_raw).
// TiendaRaw llega sin canonicalizar; StockActual puede venir nulo o negativo
// de los archivos fuente y se recorta a cero en el dominio.
type Existencia struct {
	TiendaRaw   string
	CodBarras   string
	Marca       string
	Color       string
	StockActual int
}

// ExistenciaDetalle existencia ya cruzada con config_tiendas para consulta directa.
type ExistenciaDetalle struct {
	Tienda      string
	Region      string
	TipoTienda  string
	Fija        bool
	CodBarras   string
	Marca       string
	StockActual int
}

// ExistenciasRepository acceso a los saldos por tienda.
type ExistenciasRepository interface {
	// Existencias devuelve todos los saldos con la tienda cruda.
	Existencias(ctx context.Context) ([]Existencia, error)
	// ExistenciasPorTienda devuelve los saldos ya cruzados con el registro de
	// tiendas, ordenados por tienda y marca (consulta de solo lectura).
	ExistenciasPorTienda(ctx context.Context) ([]ExistenciaDetalle, error)
}
