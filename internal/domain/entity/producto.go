package entity

// Producto referencia inmutable identificada por código de barras (siempre en mayúsculas).
type Producto struct {
	CodBarras string
	Marca     string
	Color     string
}

// ProductoNuevo introducción explícita de un código al plan de distribución.
// El motor genera una fila NUEVO por cada tienda activa.
type ProductoNuevo struct {
	CodBarras string
	Marca     string
	Color     string
}

// Valores de relleno cuando la referencia no aparece en los saldos.
const (
	SinMarca = "SIN MARCA"
	SinColor = "SIN COLOR"
)
