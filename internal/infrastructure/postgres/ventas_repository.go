package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

var _ repository.VentasRepository = (*VentasRepo)(nil)

// VentasRepo lee el histórico de ventas desde ventas_historico_raw.
type VentasRepo struct {
	q Querier
}

func NewVentasRepository(q Querier) *VentasRepo {
	return &VentasRepo{q: q}
}

// MovimientosDesde trae los movimientos con fecha >= desde. El filtrado fino
// (ventana, tienda bodega, códigos vacíos) queda en la capa de dominio.
func (r *VentasRepo) MovimientosDesde(ctx context.Context, desde time.Time) ([]asignacion.MovimientoVenta, error) {
	query := `
		SELECT COALESCE(tienda, ''), COALESCE(cod_barras, ''), COALESCE(marca, ''),
		       fecha, COALESCE(cantidad, 0)
		FROM ventas_historico_raw
		WHERE fecha IS NOT NULL AND fecha >= $1`
	rows, err := r.q.Query(ctx, query, desde)
	if err != nil {
		return nil, fmt.Errorf("movimientos de venta: %w", err)
	}
	defer rows.Close()

	var movimientos []asignacion.MovimientoVenta
	for rows.Next() {
		var m asignacion.MovimientoVenta
		var cantidad decimal.Decimal
		if err := rows.Scan(&m.TiendaRaw, &m.CodBarras, &m.Marca, &m.Fecha, &cantidad); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Cantidad = cantidad
		movimientos = append(movimientos, m)
	}
	return movimientos, rows.Err()
}
