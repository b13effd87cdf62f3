package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizar deja un string listo para usarse como clave de cruce:
// quita acentos (descomposición NFD, se eliminan las marcas combinantes),
// recorta espacios, pasa a minúsculas y colapsa espacios internos.
// Todos los cruces tienda↔registro usan esta función; nunca se comparan
// strings crudos.
func Normalizar(s string) string {
	descompuesto := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(descompuesto))
	for _, r := range descompuesto {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	limpio := strings.ToLower(strings.TrimSpace(b.String()))
	return strings.Join(strings.Fields(limpio), " ")
}

// Codigo normaliza un código de barras o marca para comparación:
// mayúsculas y sin espacios en los extremos.
func Codigo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
