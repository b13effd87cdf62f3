package asignacion

import (
	"sort"
	"strings"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/pkg/textutil"
)

// SinRegion región asignada a tiendas sin mapeo en config_tiendas.
const SinRegion = "SIN REGION"

// nombreBodega las filas de la bodega central no cuentan como demanda de tienda.
const nombreBodega = "bodega jagi"

// RegistroTiendas resuelve identificadores crudos de tienda a su registro
// canónico. El índice se construye con nombres normalizados (tanto raw_name
// como clean_name apuntan al mismo registro), de modo que un archivo fuente
// puede traer cualquiera de los dos.
type RegistroTiendas struct {
	porNombre map[string]entity.Tienda
}

// NuevoRegistroTiendas indexa las tiendas configuradas.
func NuevoRegistroTiendas(tiendas []entity.Tienda) *RegistroTiendas {
	idx := make(map[string]entity.Tienda, len(tiendas)*2)
	for _, t := range tiendas {
		if n := textutil.Normalizar(t.RawName); n != "" {
			idx[n] = t
		}
		if n := textutil.Normalizar(t.CleanName); n != "" {
			idx[n] = t
		}
	}
	return &RegistroTiendas{porNombre: idx}
}

// Resolver devuelve el registro canónico de un nombre crudo. Si el nombre no
// está mapeado, el crudo mismo actúa como nombre limpio con región SIN REGION:
// resultado degradado pero válido, nunca un error.
func (r *RegistroTiendas) Resolver(nombreRaw string) entity.Tienda {
	if t, ok := r.porNombre[textutil.Normalizar(nombreRaw)]; ok {
		return t
	}
	limpio := strings.TrimSpace(nombreRaw)
	return entity.Tienda{
		RawName:   nombreRaw,
		CleanName: limpio,
		Region:    SinRegion,
		Activa:    true,
	}
}

// EsBodega reporta si el nombre corresponde a la bodega central.
func (r *RegistroTiendas) EsBodega(nombre string) bool {
	return strings.Contains(textutil.Normalizar(nombre), nombreBodega)
}

// TiendasActivas devuelve las tiendas canónicas activas, sin la bodega,
// ordenadas por nombre normalizado para que los recorridos sean deterministas.
func (r *RegistroTiendas) TiendasActivas() []entity.Tienda {
	vistas := make(map[string]entity.Tienda)
	for _, t := range r.porNombre {
		if !t.Activa || r.EsBodega(t.CleanName) {
			continue
		}
		vistas[textutil.Normalizar(t.CleanName)] = t
	}
	claves := make([]string, 0, len(vistas))
	for k := range vistas {
		claves = append(claves, k)
	}
	sort.Strings(claves)

	tiendas := make([]entity.Tienda, 0, len(claves))
	for _, k := range claves {
		tiendas = append(tiendas, vistas[k])
	}
	return tiendas
}
