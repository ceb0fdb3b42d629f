package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // bcrypt hash, nunca plano en dominio después de persistir
	Role         string    `db:"role"`          // admin, staff
	CreatedAt    time.Time `db:"created_at"`
}
