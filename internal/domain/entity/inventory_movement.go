package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIncrease = "increase" // entrada
	MovementTypeDecrease = "decrease" // salida
	MovementTypeSet      = "set"      // ajuste absoluto
)

// InventoryMovement es una entrada inmutable del historial de auditoría.
// Se escribe exactamente una vez por mutación exitosa; nunca se actualiza ni borra.
type InventoryMovement struct {
	ID             int
	ProductID      int
	QuantityChange int    // delta con signo: positivo entrada, negativo salida
	Type           string // increase, decrease, set
	Reason         *string
	CreatedAt      *time.Time
}
