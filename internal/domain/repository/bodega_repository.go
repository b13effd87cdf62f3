package repository

import "context"

// BodegaRepository acceso al inventario de la bodega central (inventario_bodega_raw).
type BodegaRepository interface {
	// StockBodega devuelve código (en mayúsculas) → unidades disponibles,
	// sumando duplicados. Valores nulos o negativos llegan recortados a cero.
	StockBodega(ctx context.Context) (map[string]int, error)
}
