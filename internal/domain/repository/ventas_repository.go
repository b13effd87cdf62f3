package repository

import (
	"context"
	"time"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
)

// VentasRepository acceso al histórico de ventas (ventas_historico_raw).
type VentasRepository interface {
	// MovimientosDesde devuelve los movimientos con fecha >= desde, con el
	// nombre de tienda crudo. La agregación por ventana la hace el dominio.
	MovimientosDesde(ctx context.Context, desde time.Time) ([]asignacion.MovimientoVenta, error)
}
