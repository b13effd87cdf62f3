package entity

// Tienda registro canónico de una tienda (tabla config_tiendas).
// RawName es el identificador tal como aparece en los archivos fuente;
// CleanName es el nombre visible que usan los reportes.
type Tienda struct {
	RawName    string
	CleanName  string
	Region     string
	Fija       bool // tienda cuyo stock mínimo siempre se respeta; nunca dona excedentes
	TipoTienda string
	Activa     bool
}
