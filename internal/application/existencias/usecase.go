// Package existencias expone la consulta de saldos actuales por tienda.
package existencias

import (
	"context"
	"fmt"

	"github.com/jonacogo/jagi-erp/internal/domain/repository"
)

// UseCase consulta de solo lectura; no re-deriva valores de negocio.
type UseCase struct {
	existenciasRepo repository.ExistenciasRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(existenciasRepo repository.ExistenciasRepository) *UseCase {
	return &UseCase{existenciasRepo: existenciasRepo}
}

// Listar devuelve las existencias por tienda ya cruzadas con el registro.
func (uc *UseCase) Listar(ctx context.Context) ([]repository.ExistenciaDetalle, error) {
	detalle, err := uc.existenciasRepo.ExistenciasPorTienda(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar existencias: %w", err)
	}
	return detalle, nil
}
