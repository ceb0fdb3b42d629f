package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNonZeroBalance    = errors.New("el producto tiene saldo distinto de cero")
	ErrNoOp              = errors.New("no hay campos para actualizar")
	ErrStoreFailure      = errors.New("fallo del almacenamiento")
)

// IsBusiness indica si err es una regla de negocio (no un fallo de infraestructura).
// Todo lo demás que salga de una transacción se reporta como ErrStoreFailure.
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrInvalidQuantity,
		ErrInsufficientStock, ErrNonZeroBalance, ErrNoOp,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
