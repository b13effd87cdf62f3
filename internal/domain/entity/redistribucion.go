package entity

// SugerenciaRedistribucion traslado sugerido de excedente dormido entre dos
// tiendas de la misma región. Inmutable una vez calculada.
type SugerenciaRedistribucion struct {
	Region           string
	CodBarras        string
	Marca            string
	TiendaOrigen     string
	TiendaDestino    string
	StockOrigen      int
	StockDestino     int
	CantidadSugerida int
}
