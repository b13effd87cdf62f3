// Package reabastecimiento orquesta el cálculo del plan de distribución:
// pase base de reabastecimiento, filas sintéticas de expansión y códigos
// nuevos, todos sobre el motor de asignación por ítem.
package reabastecimiento

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonacogo/jagi-erp/internal/domain"
	"github.com/jonacogo/jagi-erp/internal/domain/asignacion"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/internal/domain/repository"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// Params parámetros del motor, ya validados por el llamador (ver dto.Validar).
type Params struct {
	DiasReab     int // ventana de reabastecimiento (default 10)
	DiasExp      int // ventana de expansión, >= DiasReab (default 60)
	VentasMinExp int // umbral de ventas de expansión (default 3)

	SoloConVentas        bool // deja solo filas base con ventas en la ventana
	ExcluirSinMovimiento bool // descarta filas base sin ventas (referencias fijas sin movimiento)
	IncluirFijas         bool // false descarta las filas de tiendas fijas de la salida

	Nuevos []entity.ProductoNuevo
}

// Resultado plan completo de una corrida.
type Resultado struct {
	// CorridaID identifica la corrida en logs y descargas; no afecta el cálculo.
	CorridaID string
	Filas     []entity.FilaReabastecimiento
	// MovimientosOmitidos filas malformadas rechazadas en la agregación.
	MovimientosOmitidos int
}

// UseCase calcula el plan de reabastecimiento. Cada corrida recarga política,
// registro y saldos frescos; no hay estado compartido entre invocaciones.
type UseCase struct {
	configRepo      repository.ConfiguracionRepository
	ventasRepo      repository.VentasRepository
	existenciasRepo repository.ExistenciasRepository
	bodegaRepo      repository.BodegaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	configRepo repository.ConfiguracionRepository,
	ventasRepo repository.VentasRepository,
	existenciasRepo repository.ExistenciasRepository,
	bodegaRepo repository.BodegaRepository,
) *UseCase {
	return &UseCase{
		configRepo:      configRepo,
		ventasRepo:      ventasRepo,
		existenciasRepo: existenciasRepo,
		bodegaRepo:      bodegaRepo,
	}
}

// fila envuelve la entidad con las claves internas del pase.
type fila struct {
	*entity.FilaReabastecimiento
	tiendaNorm string
	fija       bool
}

// Calcular corre el plan completo. La asignación de expansión y nuevos relee
// el stock total de bodega del ítem (pools independientes): el pase base no le
// hereda su remanente a los pases sintéticos.
func (uc *UseCase) Calcular(ctx context.Context, p Params) (*Resultado, error) {
	if p.DiasExp < p.DiasReab {
		return nil, domain.ErrVentanaInvalida
	}

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
	excluidos, err := uc.configRepo.CodigosExcluidos(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar códigos excluidos: %w", err)
	}
	tiendas, err := uc.configRepo.Tiendas(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar tiendas: %w", err)
	}

	registro := asignacion.NuevoRegistroTiendas(tiendas)
	reglas := asignacion.NuevasReglasStockMinimo(politica, referencias, marcas)
	excluidosSet := make(map[string]struct{}, len(excluidos))
	for _, c := range excluidos {
		if c = textutil.Codigo(c); c != "" {
			excluidosSet[c] = struct{}{}
		}
	}

	stockBodega, err := uc.bodegaRepo.StockBodega(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar stock de bodega: %w", err)
	}

	ahora := time.Now()
	desdeExp := ahora.AddDate(0, 0, -p.DiasExp)
	movimientos, err := uc.ventasRepo.MovimientosDesde(ctx, desdeExp)
	if err != nil {
		return nil, fmt.Errorf("cargar histórico de ventas: %w", err)
	}
	demandaReab := asignacion.AgregarDemanda(movimientos, ahora.AddDate(0, 0, -p.DiasReab), registro)
	demandaExp := asignacion.AgregarDemanda(movimientos, desdeExp, registro)

	existencias, err := uc.existenciasRepo.Existencias(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar existencias: %w", err)
	}

	base := uc.filasBase(existencias, registro, reglas, demandaReab, excluidosSet, stockBodega)
	asignarBase(base, stockBodega)

	existentes := make(map[asignacion.ClaveDemanda]struct{}, len(base))
	for _, f := range base {
		existentes[asignacion.ClaveDemanda{TiendaNorm: f.tiendaNorm, CodBarras: f.CodBarras}] = struct{}{}
	}

	expansion := uc.filasExpansion(p, demandaExp, existencias, existentes, registro, reglas, excluidosSet, stockBodega)
	nuevos := uc.filasNuevos(p.Nuevos, registro, reglas, stockBodega)

	filas := make([]entity.FilaReabastecimiento, 0, len(base)+len(expansion)+len(nuevos))
	for _, f := range base {
		if f.Observacion == entity.ObservacionOK {
			continue
		}
		if p.SoloConVentas && f.VentasPeriodo == 0 {
			continue
		}
		if p.ExcluirSinMovimiento && f.VentasPeriodo == 0 {
			continue
		}
		if !p.IncluirFijas && f.fija {
			continue
		}
		filas = append(filas, *f.FilaReabastecimiento)
	}
	for _, f := range expansion {
		if !p.IncluirFijas && f.fija {
			continue
		}
		filas = append(filas, *f.FilaReabastecimiento)
	}
	for _, f := range nuevos {
		if !p.IncluirFijas && f.fija {
			continue
		}
		filas = append(filas, *f.FilaReabastecimiento)
	}

	sort.SliceStable(filas, func(i, j int) bool {
		a, b := filas[i], filas[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Tienda != b.Tienda {
			return a.Tienda < b.Tienda
		}
		if a.Marca != b.Marca {
			return a.Marca < b.Marca
		}
		return a.CodBarras < b.CodBarras
	})

	return &Resultado{
		CorridaID:           uuid.NewString(),
		Filas:               filas,
		MovimientosOmitidos: demandaExp.Omitidas,
	}, nil
}

// filasBase construye las filas del pase base desde los saldos por tienda.
// Los duplicados de un par (tienda, código) colapsan sumando el stock.
func (uc *UseCase) filasBase(
	existencias []repository.Existencia,
	registro *asignacion.RegistroTiendas,
	reglas asignacion.ReglasStockMinimo,
	demanda asignacion.Demanda,
	excluidos map[string]struct{},
	stockBodega map[string]int,
) []*fila {
	porClave := make(map[asignacion.ClaveDemanda]*fila)
	var orden []asignacion.ClaveDemanda

	for _, ex := range existencias {
		codigo := textutil.Codigo(ex.CodBarras)
		if codigo == "" {
			continue
		}
		if _, ok := excluidos[codigo]; ok {
			continue
		}
		if registro.EsBodega(ex.TiendaRaw) {
			continue
		}
		t := registro.Resolver(ex.TiendaRaw)
		stock := ex.StockActual
		if stock < 0 {
			stock = 0
		}
		clave := asignacion.ClaveDemanda{TiendaNorm: textutil.Normalizar(t.CleanName), CodBarras: codigo}
		if f, ok := porClave[clave]; ok {
			f.StockActual += stock
			continue
		}
		porClave[clave] = &fila{
			FilaReabastecimiento: &entity.FilaReabastecimiento{
				Region:      t.Region,
				Tienda:      t.CleanName,
				CodBarras:   codigo,
				Marca:       ex.Marca,
				Color:       ex.Color,
				StockActual: stock,
				StockBodega: stockBodega[codigo],
			},
			tiendaNorm: clave.TiendaNorm,
			fija:       t.Fija,
		}
		orden = append(orden, clave)
	}

	filas := make([]*fila, 0, len(orden))
	for _, clave := range orden {
		f := porClave[clave]
		f.VentasPeriodo = demanda.Totales[clave]
		f.StockMinimo = reglas.StockMinimo(f.CodBarras, f.Marca, f.fija)
		if f.VentasPeriodo > 0 || reglas.EsReferenciaFija(f.CodBarras) {
			if d := f.StockMinimo - f.StockActual; d > 0 {
				f.CantidadADespachar = d
			}
		}
		filas = append(filas, f)
	}
	return filas
}

// asignarBase corre el motor por ítem y sella observación y remanente.
func asignarBase(filas []*fila, stockBodega map[string]int) {
	porCodigo := make(map[string][]*fila)
	for _, f := range filas {
		porCodigo[f.CodBarras] = append(porCodigo[f.CodBarras], f)
	}
	for codigo, grupo := range porCodigo {
		candidatos := make([]asignacion.Candidato, 0, len(grupo))
		porNorm := make(map[string]*fila, len(grupo))
		for _, f := range grupo {
			candidatos = append(candidatos, asignacion.Candidato{
				Tienda:     f.Tienda,
				TiendaNorm: f.tiendaNorm,
				Fija:       f.fija,
				Ventas:     f.VentasPeriodo,
				Solicitado: f.CantidadADespachar,
			})
			porNorm[f.tiendaNorm] = f
		}
		asignados, restante := asignacion.AsignarItem(stockBodega[codigo], candidatos, asignacion.ModoBase)
		for _, a := range asignados {
			porNorm[a.TiendaNorm].CantidadAsignada = a.Cantidad
		}
		for _, f := range grupo {
			f.StockBodegaRestante = restante
			f.Observacion = asignacion.ObservacionBase(f.CantidadADespachar, f.CantidadAsignada)
		}
	}
}

// filasExpansion genera filas sintéticas para tiendas activas que no manejan
// un código que vende bien en la ventana larga. Cada ítem asigna sobre su
// stock total de bodega, no sobre el remanente del pase base.
func (uc *UseCase) filasExpansion(
	p Params,
	demandaExp asignacion.Demanda,
	existencias []repository.Existencia,
	existentes map[asignacion.ClaveDemanda]struct{},
	registro *asignacion.RegistroTiendas,
	reglas asignacion.ReglasStockMinimo,
	excluidos map[string]struct{},
	stockBodega map[string]int,
) []*fila {
	ventasPorCodigo := demandaExp.TotalesPorCodigo()

	codigos := make([]string, 0, len(ventasPorCodigo))
	for codigo, total := range ventasPorCodigo {
		if total < p.VentasMinExp {
			continue
		}
		if _, ok := excluidos[codigo]; ok {
			continue
		}
		codigos = append(codigos, codigo)
	}
	sort.Strings(codigos)

	// Marca y color de referencia: primera aparición del código en saldos.
	info := make(map[string]entity.Producto)
	for _, ex := range existencias {
		codigo := textutil.Codigo(ex.CodBarras)
		if _, ok := info[codigo]; !ok && codigo != "" {
			info[codigo] = entity.Producto{CodBarras: codigo, Marca: ex.Marca, Color: ex.Color}
		}
	}

	tiendas := registro.TiendasActivas()
	minDefault := reglas.MinimoDefault()

	var filas []*fila
	for _, codigo := range codigos {
		ref, ok := info[codigo]
		if !ok {
			ref = entity.Producto{CodBarras: codigo, Marca: entity.SinMarca, Color: entity.SinColor}
		}
		disponible := stockBodega[codigo]

		var grupo []*fila
		for _, t := range tiendas {
			tn := textutil.Normalizar(t.CleanName)
			if _, ya := existentes[asignacion.ClaveDemanda{TiendaNorm: tn, CodBarras: codigo}]; ya {
				continue
			}
			grupo = append(grupo, &fila{
				FilaReabastecimiento: &entity.FilaReabastecimiento{
					Region:             t.Region,
					Tienda:             t.CleanName,
					CodBarras:          codigo,
					Marca:              ref.Marca,
					Color:              ref.Color,
					StockBodega:        disponible,
					StockMinimo:        minDefault,
					CantidadADespachar: minDefault,
					Observacion:        entity.ObservacionExpansion,
				},
				tiendaNorm: tn,
				fija:       t.Fija,
			})
		}
		asignarSintetico(grupo, disponible, asignacion.ModoExpansion)
		filas = append(filas, grupo...)
	}
	return filas
}

// filasNuevos genera una fila NUEVO por tienda activa para cada introducción.
// Con bodega agotada la asignación se fuerza a lo solicitado: el código nuevo
// tiene que aparecer completo en el plan aunque físicamente aún no exista.
func (uc *UseCase) filasNuevos(
	nuevos []entity.ProductoNuevo,
	registro *asignacion.RegistroTiendas,
	reglas asignacion.ReglasStockMinimo,
	stockBodega map[string]int,
) []*fila {
	tiendas := registro.TiendasActivas()

	var filas []*fila
	for _, n := range nuevos {
		codigo := textutil.Codigo(n.CodBarras)
		if codigo == "" {
			continue
		}
		marca := n.Marca
		if marca == "" {
			marca = entity.SinMarca
		}
		color := n.Color
		if color == "" {
			color = entity.SinColor
		}
		disponible := stockBodega[codigo]

		var grupo []*fila
		for _, t := range tiendas {
			minimo := reglas.StockMinimo(codigo, marca, t.Fija)
			grupo = append(grupo, &fila{
				FilaReabastecimiento: &entity.FilaReabastecimiento{
					Region:             t.Region,
					Tienda:             t.CleanName,
					CodBarras:          codigo,
					Marca:              marca,
					Color:              color,
					StockBodega:        disponible,
					StockMinimo:        minimo,
					CantidadADespachar: minimo,
					Observacion:        entity.ObservacionNuevo,
				},
				tiendaNorm: textutil.Normalizar(t.CleanName),
				fija:       t.Fija,
			})
		}
		asignarSintetico(grupo, disponible, asignacion.ModoNuevo)
		filas = append(filas, grupo...)
	}
	return filas
}

// asignarSintetico corre el motor sobre un grupo de filas sintéticas de un ítem.
func asignarSintetico(grupo []*fila, disponible int, modo asignacion.Modo) {
	if len(grupo) == 0 {
		return
	}
	candidatos := make([]asignacion.Candidato, 0, len(grupo))
	porNorm := make(map[string]*fila, len(grupo))
	for _, f := range grupo {
		candidatos = append(candidatos, asignacion.Candidato{
			Tienda:     f.Tienda,
			TiendaNorm: f.tiendaNorm,
			Fija:       f.fija,
			Solicitado: f.CantidadADespachar,
		})
		porNorm[f.tiendaNorm] = f
	}
	asignados, restante := asignacion.AsignarItem(disponible, candidatos, modo)
	for _, a := range asignados {
		porNorm[a.TiendaNorm].CantidadAsignada = a.Cantidad
	}
	for _, f := range grupo {
		f.StockBodegaRestante = restante
	}
}
