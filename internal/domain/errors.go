package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthorized    = errors.New("no autorizado")
	ErrVentanaInvalida = errors.New("la ventana de expansión debe ser mayor o igual a la de reabastecimiento")
)
