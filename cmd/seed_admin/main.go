// seed_admin crea o actualiza el usuario administrador (contraseña con bcrypt).
//
// Uso: ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run ./cmd/seed_admin
// Un segundo argumento opcional crea el usuario con otro rol: go run ./cmd/seed_admin staff
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	role := entity.RoleAdmin
	if len(os.Args) > 1 {
		role = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Admin.Password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD es obligatorio")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	user, err := uc.SeedUser(ctx, cfg.Admin.Username, cfg.Admin.Password, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario %q (id %d, rol %s) listo\n", user.Username, user.ID, user.Role)
}
