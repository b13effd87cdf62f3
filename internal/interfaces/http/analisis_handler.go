package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jonacogo/jagi-erp/internal/application/analisis"
	"github.com/jonacogo/jagi-erp/internal/application/dto"
)

// AnalisisHandler expone el análisis de desempeño por marca.
type AnalisisHandler struct {
	uc *analisis.UseCase
}

// NewAnalisisHandler construye el handler.
func NewAnalisisHandler(uc *analisis.UseCase) *AnalisisHandler {
	return &AnalisisHandler{uc: uc}
}

// Analizar godoc
// @Summary      Análisis de cobertura y oportunidades por marca
// @Tags         analisis
// @Produce      json
// @Param        marca  path  string  true  "marca a analizar"
// @Success      200  {object}  analisis.Analisis
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analisis-marca/{marca} [get]
func (h *AnalisisHandler) Analizar(c *fiber.Ctx) error {
	marca, err := url.PathUnescape(c.Params("marca"))
	if err != nil || strings.TrimSpace(marca) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "marca requerida"})
	}

	out, err := h.uc.Analizar(c.Context(), marca)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
