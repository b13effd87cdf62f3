package postgres

import (
	"context"
	"fmt"

	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

var _ repository.ExistenciasRepository = (*ExistenciasRepo)(nil)

// ExistenciasRepo lee el snapshot de existencias por tienda (ventas_saldos_raw).
type ExistenciasRepo struct {
	q Querier
}

func NewExistenciasRepository(q Querier) *ExistenciasRepo {
	return &ExistenciasRepo{q: q}
}

// Existencias devuelve las filas crudas tienda/código con su saldo actual.
func (r *ExistenciasRepo) Existencias(ctx context.Context) ([]repository.Existencia, error) {
	query := `
		SELECT COALESCE(tienda, ''), COALESCE(cod_barras, ''),
		       COALESCE(marca, ''), COALESCE(color, ''), COALESCE(saldo, 0)
		FROM ventas_saldos_raw
		WHERE cod_barras IS NOT NULL AND cod_barras <> ''`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("existencias: %w", err)
	}
	defer rows.Close()

	var existencias []repository.Existencia
	for rows.Next() {
		var e repository.Existencia
		if err := rows.Scan(&e.TiendaRaw, &e.CodBarras, &e.Marca, &e.Color, &e.StockActual); err != nil {
			return nil, fmt.Errorf("scan existencia: %w", err)
		}
		existencias = append(existencias, e)
	}
	return existencias, rows.Err()
}

// ExistenciasPorTienda cruza el saldo con la configuración de tiendas para la
// consulta de existencias del API.
func (r *ExistenciasRepo) ExistenciasPorTienda(ctx context.Context) ([]repository.ExistenciaDetalle, error) {
	query := `
		SELECT COALESCE(ct.clean_name, vs.tienda),
		       COALESCE(ct.region, 'SIN REGION'),
		       COALESCE(ct.tipo_tienda, ''),
		       COALESCE(ct.fija, 0),
		       vs.cod_barras,
		       COALESCE(vs.marca, ''),
		       COALESCE(vs.saldo, 0)
		FROM ventas_saldos_raw vs
		LEFT JOIN config_tiendas ct ON LOWER(TRIM(ct.raw_name)) = LOWER(TRIM(vs.tienda))
		WHERE vs.cod_barras IS NOT NULL AND vs.cod_barras <> ''
		ORDER BY 2, 1, 6, 5`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("existencias por tienda: %w", err)
	}
	defer rows.Close()

	var detalles []repository.ExistenciaDetalle
	for rows.Next() {
		var d repository.ExistenciaDetalle
		var fija int
		if err := rows.Scan(&d.Tienda, &d.Region, &d.TipoTienda, &fija, &d.CodBarras, &d.Marca, &d.StockActual); err != nil {
			return nil, fmt.Errorf("scan existencia detalle: %w", err)
		}
		d.Fija = fija == 1
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}
