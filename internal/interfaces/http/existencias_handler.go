package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jonacogo/jagi-erp/internal/application/dto"
	appexistencias "github.com/jonacogo/jagi-erp/internal/application/existencias"
)

// ExistenciasHandler expone la consulta de saldos por tienda.
type ExistenciasHandler struct {
	uc *appexistencias.UseCase
}

// NewExistenciasHandler construye el handler.
func NewExistenciasHandler(uc *appexistencias.UseCase) *ExistenciasHandler {
	return &ExistenciasHandler{uc: uc}
}

type existenciaJSON struct {
	Tienda      string `json:"tienda"`
	Region      string `json:"region"`
	TipoTienda  string `json:"tipo_tienda,omitempty"`
	Fija        bool   `json:"fija"`
	CodBarras   string `json:"cod_barras"`
	Marca       string `json:"marca"`
	StockActual int    `json:"stock_actual"`
}

type existenciasResponse struct {
	dto.PageResponse
	Existencias []existenciaJSON `json:"existencias"`
}

// Listar godoc
// @Summary      Existencias actuales por tienda
// @Tags         existencias
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (default 20, máx 100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  object
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/existencias [get]
func (h *ExistenciasHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	detalles, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	total := len(detalles)
	ini := page.Offset
	if ini > total {
		ini = total
	}
	fin := ini + page.Limit
	if fin > total {
		fin = total
	}

	out := make([]existenciaJSON, 0, fin-ini)
	for _, d := range detalles[ini:fin] {
		out = append(out, existenciaJSON{
			Tienda:      d.Tienda,
			Region:      d.Region,
			TipoTienda:  d.TipoTienda,
			Fija:        d.Fija,
			CodBarras:   d.CodBarras,
			Marca:       d.Marca,
			StockActual: d.StockActual,
		})
	}
	return c.JSON(existenciasResponse{
		PageResponse: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		Existencias:  out,
	})
}
