package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonacogo/jagi-erp/internal/application/dto"
	"github.com/jonacogo/jagi-erp/internal/application/reabastecimiento"
	"github.com/jonacogo/jagi-erp/internal/domain"
	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/excel"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/pdf"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// ReabastecimientoHandler expone el cálculo y la exportación del plan.
type ReabastecimientoHandler struct {
	uc       *reabastecimiento.UseCase
	exporter *excel.Exporter
	picking  *pdf.PickingPDFGenerator
}

// NewReabastecimientoHandler construye el handler.
func NewReabastecimientoHandler(
	uc *reabastecimiento.UseCase,
	exporter *excel.Exporter,
	picking *pdf.PickingPDFGenerator,
) *ReabastecimientoHandler {
	return &ReabastecimientoHandler{uc: uc, exporter: exporter, picking: picking}
}

// Calcular godoc
// @Summary      Calcular plan de reabastecimiento
// @Tags         reabastecimiento
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReabastecimientoRequest  true  "ventanas y banderas"
// @Success      200   {object}  dto.ReabastecimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reabastecimiento/calcular [post]
func (h *ReabastecimientoHandler) Calcular(c *fiber.Ctx) error {
	var in dto.ReabastecimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, status, errResp := h.calcular(c, in)
	if errResp != nil {
		return c.Status(status).JSON(*errResp)
	}

	out := dto.ReabastecimientoResponse{
		CorridaID:     res.CorridaID,
		Total:         len(res.Filas),
		FilasOmitidas: res.MovimientosOmitidos,
		Filas:         make([]dto.FilaReabastecimientoDTO, 0, len(res.Filas)),
	}
	for _, f := range res.Filas {
		out.Filas = append(out.Filas, dto.DesdeFila(f))
	}
	return c.JSON(out)
}

// Exportar godoc
// @Summary      Exportar plan a Excel (general o picking)
// @Tags         reabastecimiento
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ExportarRequest  true  "cálculo más filtros de presentación"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reabastecimiento/exportar [post]
func (h *ReabastecimientoHandler) Exportar(c *fiber.Ctx) error {
	var in dto.ExportarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, status, errResp := h.calcular(c, in.ReabastecimientoRequest)
	if errResp != nil {
		return c.Status(status).JSON(*errResp)
	}

	filas := filtrarExportacion(res.Filas, in)
	libro, err := h.exporter.Exportar(filas, in.TipoFormato)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}

	nombre := fmt.Sprintf("reabastecimiento_%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(libro)
}

// PickingPDF godoc
// @Summary      Generar lista de picking en PDF
// @Tags         reabastecimiento
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ExportarRequest  true  "cálculo más filtros de presentación"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reabastecimiento/picking-pdf [post]
func (h *ReabastecimientoHandler) PickingPDF(c *fiber.Ctx) error {
	var in dto.ExportarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, status, errResp := h.calcular(c, in.ReabastecimientoRequest)
	if errResp != nil {
		return c.Status(status).JSON(*errResp)
	}

	filas := filtrarExportacion(res.Filas, in)
	doc, err := h.picking.GenerarListaPicking(c.Context(), filas, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}

	nombre := fmt.Sprintf("picking_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(doc)
}

// calcular valida, arma Params y corre el motor.
func (h *ReabastecimientoHandler) calcular(c *fiber.Ctx, in dto.ReabastecimientoRequest) (*reabastecimiento.Resultado, int, *dto.ErrorResponse) {
	in.Defaults()
	if err := in.Validar(); err != nil {
		return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}

	incluirFijas := true
	if in.IncluirFijas != nil {
		incluirFijas = *in.IncluirFijas
	}
	nuevos := make([]entity.ProductoNuevo, 0, len(in.Nuevos))
	for _, n := range in.Nuevos {
		nuevos = append(nuevos, entity.ProductoNuevo{
			CodBarras: textutil.Codigo(n.CodBarras),
			Marca:     n.Marca,
			Color:     n.Color,
		})
	}

	res, err := h.uc.Calcular(c.Context(), reabastecimiento.Params{
		DiasReab:             in.DiasReab,
		DiasExp:              in.DiasExp,
		VentasMinExp:         in.VentasMinExp,
		SoloConVentas:        in.SoloConVentas,
		ExcluirSinMovimiento: in.ExcluirSinMovimiento,
		IncluirFijas:         incluirFijas,
		Nuevos:               nuevos,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVentanaInvalida) {
			return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
		}
		return nil, fiber.StatusInternalServerError, &dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
	return res, 0, nil
}

// filtrarExportacion aplica los filtros de presentación de la exportación.
// Ninguno altera el resultado del motor, solo lo que se imprime.
func filtrarExportacion(filas []entity.FilaReabastecimiento, in dto.ExportarRequest) []entity.FilaReabastecimiento {
	tiendas := make(map[string]bool, len(in.TiendasFiltro))
	for _, t := range in.TiendasFiltro {
		tiendas[textutil.Normalizar(t)] = true
	}
	observaciones := make(map[entity.Observacion]bool, len(in.ObservacionesFiltro))
	for _, o := range in.ObservacionesFiltro {
		observaciones[entity.Observacion(o)] = true
	}

	out := make([]entity.FilaReabastecimiento, 0, len(filas))
	for _, f := range filas {
		if len(tiendas) > 0 && !tiendas[textutil.Normalizar(f.Tienda)] {
			continue
		}
		if len(observaciones) > 0 && !observaciones[f.Observacion] {
			continue
		}
		if in.ExcluirCantidadCero && f.CantidadADespachar == 0 {
			continue
		}
		if in.SoloCompra && f.Observacion != entity.ObservacionCompra {
			continue
		}
		out = append(out, f)
	}
	return out
}
