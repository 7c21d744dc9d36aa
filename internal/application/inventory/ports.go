package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la actualización de saldo y el movimiento de
// auditoría de cada mutación se apliquen como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
