package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
)

// InventoryMovementRepository puerto de persistencia para el historial de movimientos.
type InventoryMovementRepository interface {
	// Create persiste un movimiento y completa ID y CreatedAt asignados por la BD.
	Create(ctx context.Context, movement *entity.InventoryMovement) error

	// ListByProduct lista el historial de un producto, el más reciente primero.
	ListByProduct(ctx context.Context, productID, limit, offset int) ([]*entity.InventoryMovement, error)
}
