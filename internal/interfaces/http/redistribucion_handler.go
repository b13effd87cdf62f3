package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jonacogo/jagi-erp/internal/application/dto"
	"github.com/jonacogo/jagi-erp/internal/application/redistribucion"
)

// RedistribucionHandler expone el emparejamiento tienda a tienda.
type RedistribucionHandler struct {
	uc *redistribucion.UseCase
}

// NewRedistribucionHandler construye el handler.
func NewRedistribucionHandler(uc *redistribucion.UseCase) *RedistribucionHandler {
	return &RedistribucionHandler{uc: uc}
}

// Calcular godoc
// @Summary      Calcular sugerencias de redistribución entre tiendas
// @Tags         redistribucion
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RedistribucionRequest  true  "ventana, mínimo de ventas y origen opcional"
// @Success      200   {object}  dto.RedistribucionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/redistribucion/calcular [post]
func (h *RedistribucionHandler) Calcular(c *fiber.Ctx) error {
	var in dto.RedistribucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Defaults()
	if err := in.Validar(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	res, err := h.uc.Calcular(c.Context(), redistribucion.Params{
		Dias:         in.Dias,
		VentasMin:    in.VentasMin,
		TiendaOrigen: in.TiendaOrigen,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.RedistribucionResponse{
		Total:               len(res.Sugerencias),
		MovimientosOmitidos: res.MovimientosOmitidos,
		Sugerencias:         make([]dto.SugerenciaDTO, 0, len(res.Sugerencias)),
	}
	for _, s := range res.Sugerencias {
		out.Sugerencias = append(out.Sugerencias, dto.DesdeSugerencia(s))
	}
	return c.JSON(out)
}
