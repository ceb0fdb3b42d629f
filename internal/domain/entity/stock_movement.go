package entity

import "time"

// MovementKind tipo de movimiento: entrada (IN) o salida (OUT).
type MovementKind string

// Tipos de movimiento de inventario.
const (
	KindIn  MovementKind = "IN"  // entrada, suma al saldo
	KindOut MovementKind = "OUT" // salida, resta del saldo
)

// Valid indica si el tipo es IN u OUT.
func (k MovementKind) Valid() bool {
	return k == KindIn || k == KindOut
}

// Sign devuelve +1 para IN y -1 para OUT.
func (k MovementKind) Sign() int64 {
	if k == KindOut {
		return -1
	}
	return 1
}

// Delta devuelve la contribución con signo de qty unidades de este tipo al saldo.
// Es la única fuente de la convención de signos; crear, actualizar y eliminar la usan.
func (k MovementKind) Delta(qty int64) int64 {
	return k.Sign() * qty
}

// StockIn representa una entrada de mercancía (recepción).
type StockIn struct {
	ID          int64
	ProductID   int64
	ProductName string // solo lectura, se llena en listados
	Quantity    int64
	Supplier    string
	Comment     string
	ReceivedBy  string
	OccurredAt  time.Time
}

// StockOut representa una salida de mercancía (despacho).
type StockOut struct {
	ID          int64
	ProductID   int64
	ProductName string // solo lectura, se llena en listados
	Quantity    int64
	IssuedBy    string // obligatorio
	Purpose     string
	OccurredAt  time.Time
}

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ProductID int64 // 0 = todos
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
