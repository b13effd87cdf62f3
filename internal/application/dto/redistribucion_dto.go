package dto

import (
	"fmt"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
)

// RedistribucionRequest body para POST /api/redistribucion/calcular.
type RedistribucionRequest struct {
	Dias         int    `json:"dias"`
	VentasMin    int    `json:"ventas_min"`
	TiendaOrigen string `json:"tienda_origen,omitempty"`
}

// Defaults aplica los valores por defecto (30 días, 1 venta mínima en destino).
func (r *RedistribucionRequest) Defaults() {
	if r.Dias == 0 {
		r.Dias = 30
	}
	if r.VentasMin == 0 {
		r.VentasMin = 1
	}
}

// Validar verifica los parámetros antes de correr el emparejador.
func (r RedistribucionRequest) Validar() error {
	if r.Dias < 1 || r.Dias > 180 {
		return fmt.Errorf("dias debe estar entre 1 y 180, llegó %d", r.Dias)
	}
	if r.VentasMin < 0 {
		return fmt.Errorf("ventas_min no puede ser negativo")
	}
	return nil
}

// SugerenciaDTO sugerencia de traslado en la respuesta HTTP.
type SugerenciaDTO struct {
	Region           string `json:"region"`
	CodBarras        string `json:"cod_barras"`
	Marca            string `json:"marca"`
	TiendaOrigen     string `json:"tienda_origen"`
	TiendaDestino    string `json:"tienda_destino"`
	StockOrigen      int    `json:"stock_origen"`
	StockDestino     int    `json:"stock_destino"`
	CantidadSugerida int    `json:"cantidad_sugerida"`
}

// RedistribucionResponse respuesta del cálculo.
type RedistribucionResponse struct {
	Total int `json:"total"`
	// MovimientosOmitidos filas malformadas rechazadas al agregar ventas.
	MovimientosOmitidos int             `json:"movimientos_omitidos"`
	Sugerencias         []SugerenciaDTO `json:"sugerencias"`
}

// DesdeSugerencia convierte la entidad a DTO.
func DesdeSugerencia(s entity.SugerenciaRedistribucion) SugerenciaDTO {
	return SugerenciaDTO{
		Region:           s.Region,
		CodBarras:        s.CodBarras,
		Marca:            s.Marca,
		TiendaOrigen:     s.TiendaOrigen,
		TiendaDestino:    s.TiendaDestino,
		StockOrigen:      s.StockOrigen,
		StockDestino:     s.StockDestino,
		CantidadSugerida: s.CantidadSugerida,
	}
}
