package entity

import "time"

// Inventory representa la existencia actual de un producto (una fila por product_id).
type Inventory struct {
	ID            int
	ProductID     int
	Quantity      int
	MinStockAlert *int // umbral informativo de alerta de stock bajo
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

// InventoryWithProduct existencia con los datos de presentación del producto.
// Los campos del producto son opcionales: el catálogo vive en otro servicio
// (LEFT JOIN, no una relación obligatoria).
type InventoryWithProduct struct {
	Inventory
	ProductName *string
	ProductSKU  *string
}
