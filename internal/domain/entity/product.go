package entity

import "time"

// Product representa un producto del almacén.
// Quantity es el saldo corriente: solo lo modifica el motor de inventario.
type Product struct {
	ID          int64
	Name        string // único, no vacío
	Unit        string // opcional ("" = NULL)
	Description string // opcional ("" = NULL)
	Quantity    int64
	CreatedAt   time.Time
}
