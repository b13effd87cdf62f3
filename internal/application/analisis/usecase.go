// Package analisis arma el análisis de cobertura de una marca: top de ventas,
// presencia por tienda y oportunidades de redistribución.
package analisis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Ventana y tamaño del top del análisis por marca.
const (
	diasAnalisis = 30
	topProductos = 10
)

// ProductoDetalle cobertura de un código del top.
type ProductoDetalle struct {
	CodBarras          string   `json:"cod_barras"`
	Color              string   `json:"color"`
	Ventas             int      `json:"ventas_30d"`
	TiendasCon         []string `json:"tiendas_con_producto"`
	TiendasSin         []string `json:"tiendas_sin_producto"`
	StockTotal         int      `json:"stock_total"`
	PotencialFaltante  int      `json:"potencial_faltante"`
}

// TiendaDetalle cobertura del top en una tienda.
type TiendaDetalle struct {
	Tienda             string `json:"tienda"`
	Region             string `json:"region"`
	ProductosTop       int    `json:"productos_top10"`
	ProductosFaltantes int    `json:"productos_faltantes"`
	VentasTop          int    `json:"ventas_top10"`
}

// Resumen totales del análisis.
type Resumen struct {
	TotalProductos              int `json:"total_productos"`
	TiendasTotales              int `json:"tiendas_totales"`
	TiendasConTop               int `json:"tiendas_con_top10"`
	OportunidadesRedistribucion int `json:"oportunidades_redistribucion"`
}

// Analisis respuesta completa para una marca.
type Analisis struct {
	Marca     string            `json:"marca"`
	Resumen   Resumen           `json:"resumen"`
	Top       []ProductoDetalle `json:"top10"`
	Tiendas   []TiendaDetalle   `json:"tiendas"`
}

// UseCase análisis de marca sobre los repositorios de lectura.
type UseCase struct {
	analisisRepo repository.AnalisisMarcaRepository
	configRepo   repository.ConfiguracionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analisisRepo repository.AnalisisMarcaRepository, configRepo repository.ConfiguracionRepository) *UseCase {
	return &UseCase{analisisRepo: analisisRepo, configRepo: configRepo}
}

// Analizar calcula la cobertura de la marca en las tiendas configuradas.
func (uc *UseCase) Analizar(ctx context.Context, marca string) (*Analisis, error) {
	marcaNorm := textutil.Codigo(marca)
	desde := time.Now().AddDate(0, 0, -diasAnalisis)

	top, err := uc.analisisRepo.TopPorMarca(ctx, marcaNorm, desde, topProductos)
	if err != nil {
		return nil, fmt.Errorf("top de la marca: %w", err)
	}
	if len(top) == 0 {
		// Marca sin ventas en la ventana: cobertura sobre los códigos en saldos.
		top, err = uc.analisisRepo.ProductosSinVentas(ctx, marcaNorm, topProductos)
		if err != nil {
			return nil, fmt.Errorf("productos sin ventas: %w", err)
		}
	}

	tiendas, err := uc.configRepo.Tiendas(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar tiendas: %w", err)
	}
	registro := asignacion.NuevoRegistroTiendas(tiendas)
	activas := registro.TiendasActivas()

	detalles := make([]ProductoDetalle, 0, len(top))
	tiendasConAlgo := make(map[string]struct{})

	for _, p := range top {
		stock, err := uc.analisisRepo.StockPorBarra(ctx, p.CodBarras)
		if err != nil {
			return nil, fmt.Errorf("stock por código %s: %w", p.CodBarras, err)
		}

		conProducto := make(map[string]struct{})
		total := 0
		for _, s := range stock {
			if s.StockActual <= 0 || registro.EsBodega(s.TiendaRaw) {
				continue
			}
			t := registro.Resolver(s.TiendaRaw)
			conProducto[t.CleanName] = struct{}{}
			tiendasConAlgo[t.CleanName] = struct{}{}
			total += s.StockActual
		}

		var con, sin []string
		for _, t := range activas {
			if _, ok := conProducto[t.CleanName]; ok {
				con = append(con, t.CleanName)
			} else {
				sin = append(sin, t.CleanName)
			}
		}
		sort.Strings(con)
		sort.Strings(sin)

		detalles = append(detalles, ProductoDetalle{
			CodBarras:         p.CodBarras,
			Color:             p.Color,
			Ventas:            p.Ventas,
			TiendasCon:        con,
			TiendasSin:        sin,
			StockTotal:        total,
			PotencialFaltante: len(sin),
		})
	}

	porTienda := make([]TiendaDetalle, 0, len(activas))
	for _, t := range activas {
		d := TiendaDetalle{Tienda: t.CleanName, Region: t.Region}
		for _, p := range detalles {
			presente := false
			for _, nombre := range p.TiendasCon {
				if nombre == t.CleanName {
					presente = true
					break
				}
			}
			if presente {
				d.ProductosTop++
				d.VentasTop += p.Ventas
			} else {
				d.ProductosFaltantes++
			}
		}
		porTienda = append(porTienda, d)
	}

	oportunidades := 0
	for _, p := range detalles {
		oportunidades += p.PotencialFaltante
	}

	return &Analisis{
		Marca: marca,
		Resumen: Resumen{
			TotalProductos:              len(detalles),
			TiendasTotales:              len(activas),
			TiendasConTop:               len(tiendasConAlgo),
			OportunidadesRedistribucion: oportunidades,
		},
		Top:     detalles,
		Tiendas: porTienda,
	}, nil
}
