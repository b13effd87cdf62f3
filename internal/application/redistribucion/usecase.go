// Package redistribucion calcula traslados sugeridos de excedente dormido
// entre tiendas de una misma región.
package redistribucion

import (
	"context"
	"fmt"
	"time"

	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	domredis "github.com/jonacogo/jagi-erp/internal/domain/redistribucion"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Params parámetros del emparejador, validados por el llamador.
type Params struct {
	Dias         int    // ventana de ventas (default 30)
	VentasMin    int    // ventas mínimas del destino (default 1)
	TiendaOrigen string // opcional: restringe el origen a una tienda
}

// Resultado sugerencias de una corrida.
type Resultado struct {
	Sugerencias         []entity.SugerenciaRedistribucion
	MovimientosOmitidos int
}

// UseCase arma las posiciones por (tienda, código) y delega el cruce al
// emparejador de dominio.
type UseCase struct {
	configRepo      repository.ConfiguracionRepository
	ventasRepo      repository.VentasRepository
	existenciasRepo repository.ExistenciasRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	configRepo repository.ConfiguracionRepository,
	ventasRepo repository.VentasRepository,
	existenciasRepo repository.ExistenciasRepository,
) *UseCase {
	return &UseCase{
		configRepo:      configRepo,
		ventasRepo:      ventasRepo,
		existenciasRepo: existenciasRepo,
	}
}

// Calcular corre el emparejamiento regional. Un resultado vacío es la salida
// normal "sin oportunidades", no un error.
func (uc *UseCase) Calcular(ctx context.Context, p Params) (*Resultado, error) {
	politica, err := uc.configRepo.PoliticaStockMinimo(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar política de stock mínimo: %w", err)
	}
	referencias, err := uc.configRepo.ReferenciasFijas(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar referencias fijas: %w", err)
	}
	marcas, err := uc.configRepo.MarcasMultimarca(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar marcas multimarca: %w", err)
	}
	tiendas, err := uc.configRepo.Tiendas(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar tiendas: %w", err)
	}

	registro := asignacion.NuevoRegistroTiendas(tiendas)
	reglas := asignacion.NuevasReglasStockMinimo(politica, referencias, marcas)

	desde := time.Now().AddDate(0, 0, -p.Dias)
	movimientos, err := uc.ventasRepo.MovimientosDesde(ctx, desde)
	if err != nil {
		return nil, fmt.Errorf("cargar histórico de ventas: %w", err)
	}
	demanda := asignacion.AgregarDemanda(movimientos, desde, registro)

	existencias, err := uc.existenciasRepo.Existencias(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar existencias: %w", err)
	}

	// Posición por (tienda, código): duplicados colapsan sumando stock.
	type clavePos struct {
		tiendaNorm string
		codigo     string
	}
	porClave := make(map[clavePos]*domredis.Posicion)
	var orden []clavePos
	for _, ex := range existencias {
		codigo := textutil.Codigo(ex.CodBarras)
		if codigo == "" || registro.EsBodega(ex.TiendaRaw) {
			continue
		}
		t := registro.Resolver(ex.TiendaRaw)
		tn := textutil.Normalizar(t.CleanName)
		stock := ex.StockActual
		if stock < 0 {
			stock = 0
		}
		clave := clavePos{tiendaNorm: tn, codigo: codigo}
		if pos, ok := porClave[clave]; ok {
			pos.StockActual += stock
			continue
		}
		porClave[clave] = &domredis.Posicion{
			Tienda:      t.CleanName,
			TiendaNorm:  tn,
			Region:      t.Region,
			Fija:        t.Fija,
			CodBarras:   codigo,
			Marca:       textutil.Codigo(ex.Marca),
			StockActual: stock,
		}
		orden = append(orden, clave)
	}

	posiciones := make([]domredis.Posicion, 0, len(orden))
	for _, clave := range orden {
		pos := porClave[clave]
		pos.VentasPeriodo = demanda.Ventas(pos.TiendaNorm, pos.CodBarras)
		pos.StockMinimo = reglas.StockMinimo(pos.CodBarras, pos.Marca, pos.Fija)
		posiciones = append(posiciones, *pos)
	}

	sugerencias := domredis.Emparejar(posiciones, p.VentasMin, p.TiendaOrigen)
	return &Resultado{Sugerencias: sugerencias, MovimientosOmitidos: demanda.Omitidas}, nil
}
