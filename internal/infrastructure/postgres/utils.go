package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation producto inexistente al insertar un movimiento.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isCheckViolation por ejemplo products.quantity >= 0.
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isLockTimeout se superó lock_timeout esperando un bloqueo de fila.
func isLockTimeout(err error) bool {
	code := pgCode(err)
	return code == codeLockNotAvailable || code == codeQueryCanceled
}
