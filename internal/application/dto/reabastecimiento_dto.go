package dto

import (
	"fmt"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// ProductoNuevoDTO introducción explícita de un código al plan.
type ProductoNuevoDTO struct {
	CodBarras string `json:"cod_barras"`
	Marca     string `json:"marca,omitempty"`
	Color     string `json:"color,omitempty"`
}

// ReabastecimientoRequest body para POST /api/reabastecimiento/calcular.
// Los ceros toman los valores por defecto del motor (10/60/3).
type ReabastecimientoRequest struct {
	DiasReab             int                `json:"dias_reab"`
	DiasExp              int                `json:"dias_exp"`
	VentasMinExp         int                `json:"ventas_min_exp"`
	SoloConVentas        bool               `json:"solo_con_ventas"`
	ExcluirSinMovimiento bool               `json:"excluir_sin_movimiento"`
	IncluirFijas         *bool              `json:"incluir_fijas,omitempty"` // nil = true
	Nuevos               []ProductoNuevoDTO `json:"nuevos_codigos,omitempty"`
}

// Defaults aplica los valores por defecto del motor sobre los campos en cero.
func (r *ReabastecimientoRequest) Defaults() {
	if r.DiasReab == 0 {
		r.DiasReab = 10
	}
	if r.DiasExp == 0 {
		r.DiasExp = 60
	}
	if r.VentasMinExp == 0 {
		r.VentasMinExp = 3
	}
}

// Validar verifica las ventanas antes de que corra el motor: el motor asume
// ventanas bien formadas y nunca las revalida.
func (r ReabastecimientoRequest) Validar() error {
	if r.DiasReab < 1 || r.DiasReab > 90 {
		return fmt.Errorf("dias_reab debe estar entre 1 y 90, llegó %d", r.DiasReab)
	}
	if r.DiasExp < 1 || r.DiasExp > 180 {
		return fmt.Errorf("dias_exp debe estar entre 1 y 180, llegó %d", r.DiasExp)
	}
	if r.DiasExp < r.DiasReab {
		return fmt.Errorf("dias_exp (%d) debe ser >= dias_reab (%d)", r.DiasExp, r.DiasReab)
	}
	if r.VentasMinExp < 0 {
		return fmt.Errorf("ventas_min_exp no puede ser negativo")
	}
	for _, n := range r.Nuevos {
		if n.CodBarras == "" {
			return fmt.Errorf("nuevos_codigos: cod_barras vacío")
		}
	}
	return nil
}

// FilaReabastecimientoDTO fila del plan en la respuesta HTTP.
type FilaReabastecimientoDTO struct {
	Region              string `json:"region"`
	Tienda              string `json:"tienda"`
	CodBarras           string `json:"cod_barras"`
	Marca               string `json:"marca"`
	Color               string `json:"color"`
	VentasPeriodo       int    `json:"ventas_periodo"`
	StockActual         int    `json:"stock_actual"`
	StockBodega         int    `json:"stock_bodega"`
	StockBodegaRestante int    `json:"stock_bodega_restante"`
	StockMinimo         int    `json:"stock_minimo"`
	CantidadADespachar  int    `json:"cantidad_a_despachar"`
	CantidadAsignada    int    `json:"cantidad_asignada"`
	Observacion         string `json:"observacion"`
}

// ReabastecimientoResponse respuesta del cálculo.
type ReabastecimientoResponse struct {
	CorridaID     string                    `json:"corrida_id"`
	Total         int                       `json:"total"`
	FilasOmitidas int                       `json:"filas_omitidas"` // movimientos malformados descartados al agregar
	Filas         []FilaReabastecimientoDTO `json:"filas"`
}

// DesdeFila convierte la entidad a DTO.
func DesdeFila(f entity.FilaReabastecimiento) FilaReabastecimientoDTO {
	return FilaReabastecimientoDTO{
		Region:              f.Region,
		Tienda:              f.Tienda,
		CodBarras:           f.CodBarras,
		Marca:               f.Marca,
		Color:               f.Color,
		VentasPeriodo:       f.VentasPeriodo,
		StockActual:         f.StockActual,
		StockBodega:         f.StockBodega,
		StockBodegaRestante: f.StockBodegaRestante,
		StockMinimo:         f.StockMinimo,
		CantidadADespachar:  f.CantidadADespachar,
		CantidadAsignada:    f.CantidadAsignada,
		Observacion:         string(f.Observacion),
	}
}

// ExportarRequest parámetros de exportación: el cálculo más filtros de
// presentación que no alteran el resultado del motor.
type ExportarRequest struct {
	ReabastecimientoRequest
	TipoFormato         string   `json:"tipo_formato,omitempty"` // general | picking
	TiendasFiltro       []string `json:"tiendas_filtro,omitempty"`
	ObservacionesFiltro []string `json:"observaciones_filtro,omitempty"`
	ExcluirCantidadCero bool     `json:"excluir_cantidad_cero"`
	SoloCompra          bool     `json:"solo_compra"`
}
