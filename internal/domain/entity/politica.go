package entity

// Categorías de la tabla stock_minimo_config. La clave se guarda en minúsculas.
const (
	CategoriaFijoNormal   = "fijo_normal"
	CategoriaFijoEspecial = "fijo_especial"
	CategoriaMultimarca   = "multimarca"
	CategoriaJGL          = "jgl"
	CategoriaJGM          = "jgm"
	CategoriaDefault      = "default"
	CategoriaGeneral      = "general" // alias histórico de default
)
