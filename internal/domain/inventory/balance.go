// Package inventory contiene la aritmética de saldos (servicio de dominio puro).
//
// Regla central: el saldo ya refleja la cantidad anterior de cada movimiento, así que
// una actualización aplica la diferencia con signo entre la cantidad nueva y la vieja,
// nunca la cantidad nueva directamente.
package inventory

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ValidateQuantity exige un entero estrictamente positivo.
func ValidateQuantity(qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// CreateDelta efecto sobre el saldo de registrar un movimiento nuevo.
func CreateDelta(kind entity.MovementKind, qty int64) int64 {
	return kind.Delta(qty)
}

// UpdateDelta efecto sobre el saldo de cambiar la cantidad de un movimiento de oldQty a newQty.
// Con cantidades positivas ambos términos tienen el mismo signo, así que la resta no desborda.
func UpdateDelta(kind entity.MovementKind, oldQty, newQty int64) int64 {
	return kind.Delta(newQty) - kind.Delta(oldQty)
}

// DeleteDelta efecto sobre el saldo de eliminar un movimiento (revierte su contribución).
func DeleteDelta(kind entity.MovementKind, qty int64) int64 {
	return -kind.Delta(qty)
}

// ApplyDelta devuelve el saldo resultante o ErrInsufficientStock si quedaría negativo.
// Nunca recorta a cero. Un saldo que desborda int64 es ErrInvalidQuantity.
func ApplyDelta(balance, delta int64) (int64, error) {
	next := balance + delta
	if (delta > 0 && next < balance) || (delta < 0 && next > balance) {
		return balance, fmt.Errorf("%w: saldo %d, variación %d desborda", domain.ErrInvalidQuantity, balance, delta)
	}
	if next < 0 {
		return balance, fmt.Errorf("%w: saldo %d, variación %d", domain.ErrInsufficientStock, balance, delta)
	}
	return next, nil
}
