package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-stock-service/internal/domain"
	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
	"github.com/jhoicas/inventario-stock-service/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Columnas que devuelven las mutaciones (RETURNING).
const inventoryColumns = "id, product_id, quantity, min_stock_alert, created_at, updated_at"

// List devuelve todas las existencias con nombre y SKU del producto (LEFT JOIN:
// el catálogo es de otro servicio, los campos de producto pueden venir nulos).
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryWithProduct, error) {
	query := `
		SELECT i.id, i.product_id, i.quantity, i.min_stock_alert,
		       p.name AS product_name, p.slug AS product_sku,
		       i.created_at, i.updated_at
		FROM inventory i
		LEFT JOIN products p ON i.product_id = p.id
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryWithProduct
	for rows.Next() {
		var rec entity.InventoryWithProduct
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.Quantity, &rec.MinStockAlert,
			&rec.ProductName, &rec.ProductSKU, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// GetByProduct devuelve la existencia de un producto, o nil si no hay registro.
func (r *InventoryRepo) GetByProduct(ctx context.Context, productID int) (*entity.InventoryWithProduct, error) {
	query := `
		SELECT i.id, i.product_id, i.quantity, i.min_stock_alert,
		       p.name AS product_name, p.slug AS product_sku,
		       i.created_at, i.updated_at
		FROM inventory i
		LEFT JOIN products p ON i.product_id = p.id
		WHERE i.product_id = $1`
	var rec entity.InventoryWithProduct
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&rec.ID, &rec.ProductID, &rec.Quantity, &rec.MinStockAlert,
		&rec.ProductName, &rec.ProductSKU, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}

// GetQuantity devuelve la cantidad actual; domain.ErrNotFound si no hay registro.
func (r *InventoryRepo) GetQuantity(ctx context.Context, productID int) (int, error) {
	var quantity int
	err := r.q.QueryRow(ctx, `SELECT quantity FROM inventory WHERE product_id = $1`, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get quantity: %w", err)
	}
	return quantity, nil
}

// GetQuantityForUpdate lee la cantidad bloqueando la fila (SELECT FOR UPDATE),
// para serializar lecturas-escrituras dentro de la misma transacción.
func (r *InventoryRepo) GetQuantityForUpdate(ctx context.Context, productID int) (int, error) {
	var quantity int
	err := r.q.QueryRow(ctx, `SELECT quantity FROM inventory WHERE product_id = $1 FOR UPDATE`, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get quantity for update: %w", err)
	}
	return quantity, nil
}

// IncreaseQuantity suma amount de forma atómica en una sola sentencia.
// Devuelve nil si no existe registro para el producto.
func (r *InventoryRepo) IncreaseQuantity(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity + $2, updated_at = now()
		WHERE product_id = $1
		RETURNING ` + inventoryColumns
	return r.scanMutation(ctx, "increase quantity", query, productID, amount)
}

// DecreaseQuantity resta amount solo si hay stock suficiente. La condición
// quantity >= amount va en el propio UPDATE: cero filas afectadas significa
// registro inexistente o stock insuficiente, nunca una cantidad negativa.
func (r *InventoryRepo) DecreaseQuantity(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND quantity >= $2
		RETURNING ` + inventoryColumns
	return r.scanMutation(ctx, "decrease quantity", query, productID, amount)
}

// SetQuantity fija la cantidad absoluta. Devuelve nil si no existe registro.
func (r *InventoryRepo) SetQuantity(ctx context.Context, productID, quantity int) (*entity.Inventory, error) {
	query := `
		UPDATE inventory
		SET quantity = $2, updated_at = now()
		WHERE product_id = $1
		RETURNING ` + inventoryColumns
	return r.scanMutation(ctx, "set quantity", query, productID, quantity)
}

// EnsureExists crea el registro con cantidad 0 y alerta por defecto si no existe.
// ON CONFLICT DO NOTHING lo hace idempotente bajo concurrencia.
func (r *InventoryRepo) EnsureExists(ctx context.Context, productID int) error {
	query := `
		INSERT INTO inventory (product_id, quantity, min_stock_alert)
		VALUES ($1, 0, 10)
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("ensure inventory exists: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scanMutation(ctx context.Context, op, query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.MinStockAlert, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}
