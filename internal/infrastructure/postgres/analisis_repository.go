package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

var _ repository.AnalisisMarcaRepository = (*AnalisisRepo)(nil)

// AnalisisRepo consultas de solo lectura para el análisis por marca.
type AnalisisRepo struct {
	q Querier
}

func NewAnalisisRepository(q Querier) *AnalisisRepo {
	return &AnalisisRepo{q: q}
}

func (r *AnalisisRepo) TopPorMarca(ctx context.Context, marca string, desde time.Time, limite int) ([]repository.ProductoVentas, error) {
	query := `
		SELECT vh.cod_barras,
		       COALESCE(MAX(vs.color), ''),
		       CAST(SUM(COALESCE(vh.cantidad, 0)) AS INTEGER)
		FROM ventas_historico_raw vh
		LEFT JOIN ventas_saldos_raw vs ON vs.cod_barras = vh.cod_barras
		WHERE UPPER(TRIM(vh.marca)) = UPPER(TRIM($1))
		  AND vh.fecha >= $2
		  AND vh.cod_barras IS NOT NULL AND vh.cod_barras <> ''
		GROUP BY vh.cod_barras
		HAVING SUM(COALESCE(vh.cantidad, 0)) > 0
		ORDER BY 3 DESC, vh.cod_barras
		LIMIT $3`
	return r.listaProductos(ctx, "top por marca", query, marca, desde, limite)
}

func (r *AnalisisRepo) ProductosSinVentas(ctx context.Context, marca string, limite int) ([]repository.ProductoVentas, error) {
	query := `
		SELECT cod_barras, COALESCE(MAX(color), ''), 0
		FROM ventas_saldos_raw
		WHERE UPPER(TRIM(marca)) = UPPER(TRIM($1))
		  AND cod_barras IS NOT NULL AND cod_barras <> ''
		GROUP BY cod_barras
		ORDER BY cod_barras
		LIMIT $2`
	return r.listaProductos(ctx, "productos sin ventas", query, marca, limite)
}

func (r *AnalisisRepo) StockPorBarra(ctx context.Context, codBarras string) ([]repository.StockTienda, error) {
	query := `
		SELECT COALESCE(tienda, ''), CAST(SUM(COALESCE(saldo, 0)) AS INTEGER)
		FROM ventas_saldos_raw
		WHERE cod_barras = $1
		GROUP BY tienda`
	rows, err := r.q.Query(ctx, query, codBarras)
	if err != nil {
		return nil, fmt.Errorf("stock por barra: %w", err)
	}
	defer rows.Close()

	var stock []repository.StockTienda
	for rows.Next() {
		var s repository.StockTienda
		if err := rows.Scan(&s.TiendaRaw, &s.StockActual); err != nil {
			return nil, fmt.Errorf("scan stock por barra: %w", err)
		}
		stock = append(stock, s)
	}
	return stock, rows.Err()
}

func (r *AnalisisRepo) listaProductos(ctx context.Context, etiqueta, query string, args ...any) ([]repository.ProductoVentas, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", etiqueta, err)
	}
	defer rows.Close()

	var productos []repository.ProductoVentas
	for rows.Next() {
		var p repository.ProductoVentas
		if err := rows.Scan(&p.CodBarras, &p.Color, &p.Ventas); err != nil {
			return nil, fmt.Errorf("scan %s: %w", etiqueta, err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}
