package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 5, Issuer: "test"})
}

func TestLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	seeded, err := uc.SeedUser(ctx, "admin", "supersecreta", entity.RoleAdmin)
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, resp.User.ID)

	claims, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedUser_ActualizaExistente(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	first, err := uc.SeedUser(ctx, "ana", "password-1", entity.RoleStaff)
	require.NoError(t, err)
	second, err := uc.SeedUser(ctx, "ana", "password-2", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "password-2"})
	assert.NoError(t, err)

	me, err := uc.Me(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, me.Role)
}

func TestSeedUser_Validaciones(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.SeedUser(ctx, "", "password-1", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SeedUser(ctx, "ana", "corta", entity.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SeedUser(ctx, "ana", "password-1", "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Me(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
