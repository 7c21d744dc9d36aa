package dto

import (
	"time"

	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
)

// QuantityRequest body para POST /inventory/:product_id/increase|decrease.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetStockRequest body para PUT /inventory/:product_id.
type SetStockRequest struct {
	Quantity int     `json:"quantity"`
	Reason   *string `json:"reason,omitempty"`
}

// InventoryDTO fila de existencias tal como la devuelven las mutaciones.
type InventoryDTO struct {
	ID            int        `json:"id"`
	ProductID     int        `json:"product_id"`
	Quantity      int        `json:"quantity"`
	MinStockAlert *int       `json:"min_stock_alert"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// InventoryWithProductDTO existencias con los campos de presentación del producto
// (nulos si el producto no está en el catálogo compartido).
type InventoryWithProductDTO struct {
	ID            int        `json:"id"`
	ProductID     int        `json:"product_id"`
	Quantity      int        `json:"quantity"`
	MinStockAlert *int       `json:"min_stock_alert"`
	ProductName   *string    `json:"product_name"`
	ProductSKU    *string    `json:"product_sku"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// MovementDTO entrada del historial de auditoría.
type MovementDTO struct {
	ID             int        `json:"id"`
	ProductID      int        `json:"product_id"`
	QuantityChange int        `json:"quantity_change"`
	MovementType   string     `json:"movement_type"`
	Reason         *string    `json:"reason"`
	CreatedAt      *time.Time `json:"created_at"`
}

// FromInventory mapea la entidad a su DTO.
func FromInventory(inv *entity.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:            inv.ID,
		ProductID:     inv.ProductID,
		Quantity:      inv.Quantity,
		MinStockAlert: inv.MinStockAlert,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// FromInventoryWithProduct mapea la entidad con producto a su DTO.
func FromInventoryWithProduct(rec *entity.InventoryWithProduct) InventoryWithProductDTO {
	return InventoryWithProductDTO{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		Quantity:      rec.Quantity,
		MinStockAlert: rec.MinStockAlert,
		ProductName:   rec.ProductName,
		ProductSKU:    rec.ProductSKU,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// FromInventoryWithProductList mapea la lista completa (vacía => slice vacío, no null).
func FromInventoryWithProductList(recs []*entity.InventoryWithProduct) []InventoryWithProductDTO {
	out := make([]InventoryWithProductDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromInventoryWithProduct(rec))
	}
	return out
}

// FromMovementList mapea el historial (vacío => slice vacío, no null).
func FromMovementList(movs []*entity.InventoryMovement) []MovementDTO {
	out := make([]MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, MovementDTO{
			ID:             m.ID,
			ProductID:      m.ProductID,
			QuantityChange: m.QuantityChange,
			MovementType:   m.Type,
			Reason:         m.Reason,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}
