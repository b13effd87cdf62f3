package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

// BodegaRepo lee el inventario de la bodega central (inventario_bodega_raw).
type BodegaRepo struct {
	q Querier
}

func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// StockBodega agrega el saldo de bodega por código de barras. Saldos negativos
// se ajustan a cero.
func (r *BodegaRepo) StockBodega(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT cod_barras, SUM(COALESCE(saldo, 0))
		FROM inventario_bodega_raw
		WHERE cod_barras IS NOT NULL AND cod_barras <> ''
		GROUP BY cod_barras`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock de bodega: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]int)
	for rows.Next() {
		var codigo string
		var saldo int
		if err := rows.Scan(&codigo, &saldo); err != nil {
			return nil, fmt.Errorf("scan stock bodega: %w", err)
		}
		codigo = strings.ToUpper(strings.TrimSpace(codigo))
		if codigo == "" {
			continue
		}
		if saldo < 0 {
			saldo = 0
		}
		stock[codigo] += saldo
	}
	return stock, rows.Err()
}
