package repository

import (
	"context"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// ConfiguracionRepository lee las tablas de referencia que parametrizan el
// motor. Se cargan frescas en cada corrida; las implementaciones son read-only.
type ConfiguracionRepository interface {
	// PoliticaStockMinimo devuelve categoría → cantidad (stock_minimo_config).
	PoliticaStockMinimo(ctx context.Context) (map[string]int, error)
	// ReferenciasFijas códigos cuyo mínimo siempre se honra.
	ReferenciasFijas(ctx context.Context) ([]string, error)
	// MarcasMultimarca marcas con mínimo reducido.
	MarcasMultimarca(ctx context.Context) ([]string, error)
	// CodigosExcluidos códigos que nunca entran al plan.
	CodigosExcluidos(ctx context.Context) ([]string, error)
	// Tiendas registros canónicos de config_tiendas.
	Tiendas(ctx context.Context) ([]entity.Tienda, error)
}
