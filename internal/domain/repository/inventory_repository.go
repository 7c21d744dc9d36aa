package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
)

// InventoryRepository puerto de persistencia para las existencias.
//
// Las mutaciones devuelven la fila actualizada, o nil si el UPDATE no afectó
// ninguna fila (registro inexistente; en DecreaseQuantity también stock
// insuficiente, porque el UPDATE es condicional).
type InventoryRepository interface {
	// List devuelve todas las existencias con datos del producto, ordenadas por id.
	List(ctx context.Context) ([]*entity.InventoryWithProduct, error)

	// GetByProduct devuelve la existencia de un producto con datos del producto,
	// o nil si no hay registro.
	GetByProduct(ctx context.Context, productID int) (*entity.InventoryWithProduct, error)

	// GetQuantity devuelve la cantidad actual; domain.ErrNotFound si no hay registro.
	GetQuantity(ctx context.Context, productID int) (int, error)

	// GetQuantityForUpdate lee la cantidad bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetQuantityForUpdate(ctx context.Context, productID int) (int, error)

	// IncreaseQuantity aplica quantity = quantity + amount de forma atómica.
	IncreaseQuantity(ctx context.Context, productID, amount int) (*entity.Inventory, error)

	// DecreaseQuantity aplica quantity = quantity - amount solo si quantity >= amount
	// (UPDATE condicional: no hay ventana entre verificación y escritura).
	DecreaseQuantity(ctx context.Context, productID, amount int) (*entity.Inventory, error)

	// SetQuantity fija la cantidad absoluta.
	SetQuantity(ctx context.Context, productID, quantity int) (*entity.Inventory, error)

	// EnsureExists crea el registro con cantidad 0 si no existe (upsert idempotente).
	EnsureExists(ctx context.Context, productID int) error
}
