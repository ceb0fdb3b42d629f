package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

func str(s string) *string { return &s }

func setup() (*usecase.ProductUseCase, *usecase.MovementUseCase, *memory.Store) {
	store := memory.NewStore()
	engine := inventory.NewEngine(store)
	return usecase.NewProductUseCase(store.Products(), engine),
		usecase.NewMovementUseCase(engine, store.StockIns(), store.StockOuts(), time.UTC),
		store
}

func TestProduct_CreateNormalizaNombre(t *testing.T) {
	products, _, _ := setup()
	ctx := context.Background()

	// "Café" con e + acento combinante se guarda en forma NFC
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "  Cafe\u0301 ", Unit: "kg"})
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", p.Name)
	assert.Equal(t, int64(0), p.Quantity)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Caf\u00e9"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_UpdateParcial(t *testing.T) {
	products, _, _ := setup()
	ctx := context.Background()
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Tuerca", Unit: "pcs", Description: "M8"})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Perno"})
	require.NoError(t, err)

	updated, err := products.Update(ctx, p.ID, dto.UpdateProductRequest{Description: str("")})
	require.NoError(t, err)
	assert.Equal(t, "Tuerca", updated.Name)
	assert.Equal(t, "pcs", updated.Unit)
	assert.Equal(t, "", updated.Description)

	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: str("Perno")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Update(ctx, 999, dto.UpdateProductRequest{Name: str("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListYBusqueda(t *testing.T) {
	products, _, _ := setup()
	ctx := context.Background()
	for _, name := range []string{"Martillo", "Alicate", "Clavo"} {
		_, err := products.Create(ctx, dto.CreateProductRequest{Name: name, Unit: "pcs"})
		require.NoError(t, err)
	}

	all, err := products.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "Alicate", all.Items[0].Name)
	assert.Equal(t, 50, all.Page.Limit)

	found, err := products.List(ctx, "mar", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Martillo", found.Items[0].Name)
}

func TestMovements_FlujoCompleto(t *testing.T) {
	products, movements, store := setup()
	ctx := context.Background()
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget"})
	require.NoError(t, err)

	inID, err := movements.CreateStockIn(ctx, "alice", dto.CreateStockInRequest{
		ProductID: p.ID, Quantity: dto.NewQuantity(10), Supplier: str("Acme"),
	})
	require.NoError(t, err)

	in, err := movements.GetStockIn(ctx, inID)
	require.NoError(t, err)
	assert.Equal(t, "alice", in.ReceivedBy)

	// issued_by por defecto: el usuario autenticado
	outID, err := movements.CreateStockOut(ctx, "bob", dto.CreateStockOutRequest{ProductID: p.ID, Quantity: dto.NewQuantity(4)})
	require.NoError(t, err)
	out, err := movements.GetStockOut(ctx, outID)
	require.NoError(t, err)
	assert.Equal(t, "bob", out.IssuedBy)

	_, err = movements.CreateStockOut(ctx, "bob", dto.CreateStockOutRequest{ProductID: p.ID, Quantity: dto.NewQuantity(10)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, movements.UpdateStockIn(ctx, inID, dto.UpdateStockInRequest{Quantity: dto.NewQuantity(6)}))
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Quantity)

	require.NoError(t, movements.DeleteStockOut(ctx, outID))
	require.NoError(t, movements.DeleteStockIn(ctx, inID))
	assert.NoError(t, products.Delete(ctx, p.ID))
	assert.Empty(t, store.Snapshot().Products)
}

func TestMovements_CantidadNoEntera(t *testing.T) {
	products, movements, _ := setup()
	ctx := context.Background()
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget"})
	require.NoError(t, err)

	var q dto.Quantity
	require.NoError(t, q.UnmarshalJSON([]byte(`2.5`)))
	_, err = movements.CreateStockIn(ctx, "alice", dto.CreateStockInRequest{ProductID: p.ID, Quantity: &q})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = movements.CreateStockIn(ctx, "alice", dto.CreateStockInRequest{ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad ausente")
}

func TestMovements_ListFiltros(t *testing.T) {
	products, movements, _ := setup()
	ctx := context.Background()
	a, _ := products.Create(ctx, dto.CreateProductRequest{Name: "A"})
	b, _ := products.Create(ctx, dto.CreateProductRequest{Name: "B"})
	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	for _, tc := range []struct {
		product int64
		at      time.Time
	}{{a.ID, day1}, {b.ID, day1}, {a.ID, day2}} {
		at := tc.at
		_, err := movements.CreateStockIn(ctx, "alice", dto.CreateStockInRequest{ProductID: tc.product, Quantity: dto.NewQuantity(1), OccurredAt: &at})
		require.NoError(t, err)
	}

	list, err := movements.ListStockIn(ctx, dto.MovementListRequest{ProductID: a.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, day2, list.Items[0].OccurredAt)
	assert.Equal(t, "A", list.Items[0].ProductName)

	list, err = movements.ListStockIn(ctx, dto.MovementListRequest{From: "2025-03-10", To: "2025-03-10"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	_, err = movements.ListStockIn(ctx, dto.MovementListRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = movements.ListStockIn(ctx, dto.MovementListRequest{From: "2025-03-11", To: "2025-03-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDate(t *testing.T) {
	d, dayOnly, err := usecase.ParseDate("2025-01-02", time.UTC)
	require.NoError(t, err)
	assert.True(t, dayOnly)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), d)

	ts, dayOnly, err := usecase.ParseDate("2025-01-02T10:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.False(t, dayOnly)
	assert.Equal(t, 10, ts.Hour())
}
