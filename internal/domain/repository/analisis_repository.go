package repository

import (
	"context"
	"time"
)

// ProductoVentas ventas acumuladas de un código en la ventana de análisis.
type ProductoVentas struct {
	CodBarras string
	Color     string
	Ventas    int
}

// StockTienda saldo de un código en una tienda cruda.
type StockTienda struct {
	TiendaRaw   string
	StockActual int
}

// AnalisisMarcaRepository consultas de solo lectura para el análisis por marca.
type AnalisisMarcaRepository interface {
	// TopPorMarca devuelve los `limite` códigos más vendidos de la marca desde
	// la fecha dada, ordenados por ventas descendentes.
	TopPorMarca(ctx context.Context, marca string, desde time.Time, limite int) ([]ProductoVentas, error)
	// ProductosSinVentas códigos de la marca presentes en saldos aunque no
	// registren ventas (respaldo cuando el top viene vacío).
	ProductosSinVentas(ctx context.Context, marca string, limite int) ([]ProductoVentas, error)
	// StockPorBarra saldo del código en cada tienda cruda.
	StockPorBarra(ctx context.Context, codBarras string) ([]StockTienda, error)
}
