package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock-service/internal/domain"
	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
	"github.com/jhoicas/inventario-stock-service/internal/domain/repository"
)

// Razones por defecto de los movimientos generados por cada operación.
const (
	reasonIncreased = "Stock increased"
	reasonDecreased = "Stock decreased"
)

// StockUseCase es el libro mayor de existencias: mutaciones y consultas de stock
// con su contrato de consistencia. Cada mutación exitosa produce el par
// (fila de saldo actualizada, exactamente un movimiento de auditoría) dentro de
// una misma transacción: o ambos quedan visibles, o ninguno.
type StockUseCase struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository
	movRepo  repository.InventoryMovementRepository
}

// NewStockUseCase construye el caso de uso. invRepo y movRepo van atados al pool
// (consultas fuera de transacción); las mutaciones usan repos atados a la tx.
func NewStockUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, invRepo: invRepo, movRepo: movRepo}
}

// EnsureExists crea el registro de existencias del producto con cantidad 0 y
// alerta por defecto si no existe. Idempotente; no registra movimiento.
func (uc *StockUseCase) EnsureExists(ctx context.Context, productID int) error {
	return uc.invRepo.EnsureExists(ctx, productID)
}

// GetAll devuelve todas las existencias con datos del producto, ordenadas por id.
func (uc *StockUseCase) GetAll(ctx context.Context) ([]*entity.InventoryWithProduct, error) {
	return uc.invRepo.List(ctx)
}

// GetByProduct devuelve la existencia de un producto. No crea el registro si falta.
func (uc *StockUseCase) GetByProduct(ctx context.Context, productID int) (*entity.InventoryWithProduct, error) {
	rec, err := uc.invRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// CheckStock devuelve la cantidad actual de un producto.
func (uc *StockUseCase) CheckStock(ctx context.Context, productID int) (int, error) {
	return uc.invRepo.GetQuantity(ctx, productID)
}

// Increase suma amount al stock del producto y registra un movimiento +amount.
// La suma es una sola sentencia atómica: segura bajo cualquier intercalado de
// incrementos y decrementos concurrentes sobre el mismo producto.
func (uc *StockUseCase) Increase(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		updated, err := invRepo.IncreaseQuantity(ctx, productID, amount)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		inv = updated
		reason := reasonIncreased
		return movRepo.Create(ctx, &entity.InventoryMovement{
			ProductID:      productID,
			QuantityChange: amount,
			Type:           entity.MovementTypeIncrease,
			Reason:         &reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Decrease resta amount del stock y registra un movimiento -amount.
// La verificación de stock suficiente va en el propio UPDATE condicional
// (quantity >= amount): no existe ventana entre verificación y escritura, así
// que dos decrementos concurrentes nunca dejan la cantidad en negativo.
func (uc *StockUseCase) Decrease(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		updated, err := invRepo.DecreaseQuantity(ctx, productID, amount)
		if err != nil {
			return err
		}
		if updated == nil {
			// Cero filas afectadas: registro inexistente o stock insuficiente.
			// Se distingue leyendo la cantidad dentro de la misma transacción.
			current, err := invRepo.GetQuantity(ctx, productID)
			if err != nil {
				return err
			}
			return &domain.InsufficientStockError{Available: current, Requested: amount}
		}
		inv = updated
		reason := reasonDecreased
		return movRepo.Create(ctx, &entity.InventoryMovement{
			ProductID:      productID,
			QuantityChange: -amount,
			Type:           entity.MovementTypeDecrease,
			Reason:         &reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// SetAbsolute fija la cantidad absoluta y registra un movimiento con el delta
// respecto del valor anterior. La lectura del valor anterior bloquea la fila
// (SELECT FOR UPDATE), así que dos set concurrentes se serializan y cada delta
// registrado corresponde a una transición real.
func (uc *StockUseCase) SetAbsolute(ctx context.Context, productID, quantity int, reason *string) (*entity.Inventory, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		current, err := invRepo.GetQuantityForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		updated, err := invRepo.SetQuantity(ctx, productID, quantity)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		inv = updated

		movReason := reason
		if movReason == nil {
			s := fmt.Sprintf("Stock set to %d", quantity)
			movReason = &s
		}
		return movRepo.Create(ctx, &entity.InventoryMovement{
			ProductID:      productID,
			QuantityChange: quantity - current,
			Type:           entity.MovementTypeSet,
			Reason:         movReason,
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListMovements devuelve el historial de auditoría de un producto, el más
// reciente primero. Falla con ErrNotFound si el producto no tiene registro.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID, limit, offset int) ([]*entity.InventoryMovement, error) {
	if _, err := uc.invRepo.GetQuantity(ctx, productID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByProduct(ctx, productID, limit, offset)
}
