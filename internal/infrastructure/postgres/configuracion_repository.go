package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

var _ repository.ConfiguracionRepository = (*ConfiguracionRepo)(nil)

// ConfiguracionRepo implementación de ConfiguracionRepository sobre PostgreSQL.
type ConfiguracionRepo struct {
	q Querier
}

// NewConfiguracionRepository construye el adaptador. Acepta pool o tx (Querier).
func NewConfiguracionRepository(q Querier) *ConfiguracionRepo {
	return &ConfiguracionRepo{q: q}
}

func (r *ConfiguracionRepo) PoliticaStockMinimo(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT tipo, cantidad FROM stock_minimo_config WHERE cantidad IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("politica stock minimo: %w", err)
	}
	defer rows.Close()

	politica := make(map[string]int)
	for rows.Next() {
		var tipo string
		var cantidad int
		if err := rows.Scan(&tipo, &cantidad); err != nil {
			return nil, fmt.Errorf("scan politica: %w", err)
		}
		politica[strings.ToLower(strings.TrimSpace(tipo))] = cantidad
	}
	return politica, rows.Err()
}

func (r *ConfiguracionRepo) ReferenciasFijas(ctx context.Context) ([]string, error) {
	return r.listaStrings(ctx, `SELECT cod_barras FROM referencias_fijas WHERE cod_barras IS NOT NULL`, "referencias fijas")
}

func (r *ConfiguracionRepo) MarcasMultimarca(ctx context.Context) ([]string, error) {
	return r.listaStrings(ctx, `SELECT marca FROM marcas_multimarca WHERE marca IS NOT NULL`, "marcas multimarca")
}

func (r *ConfiguracionRepo) CodigosExcluidos(ctx context.Context) ([]string, error) {
	return r.listaStrings(ctx, `SELECT cod_barras FROM codigos_excluidos WHERE cod_barras IS NOT NULL`, "codigos excluidos")
}

// Tiendas devuelve los registros canónicos de config_tiendas.
func (r *ConfiguracionRepo) Tiendas(ctx context.Context) ([]entity.Tienda, error) {
	query := `
		SELECT raw_name, clean_name,
		       COALESCE(region, ''), COALESCE(fija, 0), COALESCE(tipo_tienda, ''),
		       COALESCE(activa, 1)
		FROM config_tiendas
		WHERE clean_name IS NOT NULL`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("tiendas configuradas: %w", err)
	}
	defer rows.Close()

	var tiendas []entity.Tienda
	for rows.Next() {
		var t entity.Tienda
		var fija, activa int
		if err := rows.Scan(&t.RawName, &t.CleanName, &t.Region, &fija, &t.TipoTienda, &activa); err != nil {
			return nil, fmt.Errorf("scan tienda: %w", err)
		}
		t.Fija = fija == 1
		t.Activa = activa == 1
		tiendas = append(tiendas, t)
	}
	return tiendas, rows.Err()
}

func (r *ConfiguracionRepo) listaStrings(ctx context.Context, query, etiqueta string) ([]string, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", etiqueta, err)
	}
	defer rows.Close()

	var valores []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", etiqueta, err)
		}
		if v = strings.TrimSpace(v); v != "" {
			valores = append(valores, v)
		}
	}
	return valores, rows.Err()
}
