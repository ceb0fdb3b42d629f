package inventory_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func str(s string) *string { return &s }
func qty(n int64) *int64   { return &n }

func setup(t *testing.T) (*inventory.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return inventory.NewEngine(store), store
}

func newProduct(t *testing.T, store *memory.Store, name string) int64 {
	t.Helper()
	p := &entity.Product{Name: name, CreatedAt: time.Now()}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p.ID
}

func stockIn(t *testing.T, e *inventory.Engine, productID, n int64) int64 {
	t.Helper()
	id, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{
		Kind: entity.KindIn, ProductID: productID, Quantity: n, Attrs: inventory.EntryAttrs{Supplier: str("Acme")},
	})
	require.NoError(t, err)
	return id
}

func stockOut(e *inventory.Engine, productID, n int64, by string) (int64, error) {
	return e.CreateEntry(context.Background(), inventory.CreateEntryInput{
		Kind: entity.KindOut, ProductID: productID, Quantity: n, Attrs: inventory.EntryAttrs{IssuedBy: str(by)},
	})
}

func balance(t *testing.T, store *memory.Store, productID int64) int64 {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// assertConsistent verifica saldo = Σ entradas − Σ salidas y saldo >= 0 para todos los productos.
func assertConsistent(t *testing.T, store *memory.Store) {
	t.Helper()
	st := store.Snapshot()
	for id, p := range st.Products {
		assert.Equal(t, st.MovementSum(id), p.Quantity, "producto %d: saldo distinto de la suma de movimientos", id)
		assert.GreaterOrEqual(t, p.Quantity, int64(0), "producto %d con saldo negativo", id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario1_EntradaSumaAlSaldo(t *testing.T) {
	e, store := setup(t)
	widget := newProduct(t, store, "Widget")
	assert.Equal(t, int64(0), balance(t, store, widget))

	id := stockIn(t, e, widget, 10)

	assert.Equal(t, int64(10), balance(t, store, widget))
	entry, err := store.StockIns().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(10), entry.Quantity)
	assert.Equal(t, "Acme", entry.Supplier)
	assertConsistent(t, store)
}

func TestEscenario2_SalidaSinStockSeRechaza(t *testing.T) {
	e, store := setup(t)
	widget := newProduct(t, store, "Widget")
	stockIn(t, e, widget, 10)

	_, err := stockOut(e, widget, 4, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(6), balance(t, store, widget))

	before := store.Snapshot()
	_, err = stockOut(e, widget, 10, "bob")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), balance(t, store, widget))
	assert.Equal(t, before, store.Snapshot())
}

func TestEscenario3_ActualizarAplicaDiferencia(t *testing.T) {
	e, store := setup(t)
	widget := newProduct(t, store, "Widget")
	id := stockIn(t, e, widget, 10)

	err := e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{
		Kind: entity.KindIn, EntryID: id, Quantity: qty(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance(t, store, widget), "delta = 3 - 10 = -7")
	assertConsistent(t, store)
}

func TestEscenario4_EliminarEntradaYLuegoProducto(t *testing.T) {
	e, store := setup(t)
	widget := newProduct(t, store, "Widget")
	id := stockIn(t, e, widget, 6)

	require.NoError(t, e.DeleteEntry(context.Background(), entity.KindIn, id))
	assert.Equal(t, int64(0), balance(t, store, widget))

	require.NoError(t, e.DeleteProduct(context.Background(), widget))
	p, err := store.Products().GetByID(context.Background(), widget)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestEscenario5_EliminarProductoConSaldo(t *testing.T) {
	e, store := setup(t)
	widget := newProduct(t, store, "Widget")
	stockIn(t, e, widget, 5)
	before := store.Snapshot()

	err := e.DeleteProduct(context.Background(), widget)
	assert.ErrorIs(t, err, domain.ErrNonZeroBalance)
	assert.Equal(t, before, store.Snapshot(), "producto y movimientos permanecen")
}

func TestEscenario6_ProductoInexistente(t *testing.T) {
	e, store := setup(t)
	newProduct(t, store, "Widget")
	before := store.Snapshot()

	_, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{
		Kind: entity.KindIn, ProductID: 9999, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, store.Snapshot())
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización: el delta con signo es el punto crítico
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateEntry_Deltas(t *testing.T) {
	tests := []struct {
		name        string
		kind        entity.MovementKind
		initialIn   int64 // entrada previa que fija el saldo
		entryQty    int64 // cantidad del movimiento a actualizar
		newQty      int64
		wantBalance int64
		wantErr     error
	}{
		{"IN sube", entity.KindIn, 0, 5, 8, 8, nil},
		{"IN baja", entity.KindIn, 0, 10, 3, 3, nil},
		{"IN baja hasta cero", entity.KindIn, 0, 10, 1, 1, nil},
		{"OUT sube con stock", entity.KindOut, 10, 4, 9, 1, nil},
		{"OUT sube exacto", entity.KindOut, 10, 4, 10, 0, nil},
		{"OUT sube sin stock", entity.KindOut, 10, 4, 11, 6, domain.ErrInsufficientStock},
		{"OUT baja devuelve", entity.KindOut, 10, 4, 1, 9, nil},
		{"misma cantidad", entity.KindOut, 10, 4, 4, 6, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := setup(t)
			p := newProduct(t, store, "P")
			if tt.initialIn > 0 {
				stockIn(t, e, p, tt.initialIn)
			}
			var id int64
			if tt.kind == entity.KindIn {
				id = stockIn(t, e, p, tt.entryQty)
			} else {
				var err error
				id, err = stockOut(e, p, tt.entryQty, "alice")
				require.NoError(t, err)
			}

			err := e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{
				Kind: tt.kind, EntryID: id, Quantity: qty(tt.newQty),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantBalance, balance(t, store, p))
			assertConsistent(t, store)
		})
	}
}

func TestUpdateEntry_BajarEntradaConsumidaSeRechaza(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	in := stockIn(t, e, p, 10)
	_, err := stockOut(e, p, 8, "alice")
	require.NoError(t, err)
	before := store.Snapshot()

	// saldo 2: bajar la entrada de 10 a 5 dejaría -3
	err = e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: in, Quantity: qty(5)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before, store.Snapshot())
}

func TestUpdateEntry_SoloAtributos(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	id := stockIn(t, e, p, 4)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	err := e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{
		Kind: entity.KindIn, EntryID: id,
		Attrs: inventory.EntryAttrs{Supplier: str(""), Comment: str("revisado"), OccurredAt: &at},
	})
	require.NoError(t, err)

	entry, err := store.StockIns().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "", entry.Supplier, "cadena vacía explícita borra el valor")
	assert.Equal(t, "revisado", entry.Comment)
	assert.Equal(t, at, entry.OccurredAt)
	assert.Equal(t, int64(4), entry.Quantity)
	assert.Equal(t, int64(4), balance(t, store, p))
}

func TestUpdateEntry_Errores(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	in := stockIn(t, e, p, 4)
	out, err := stockOut(e, p, 1, "alice")
	require.NoError(t, err)
	before := store.Snapshot()

	tests := []struct {
		name string
		in   inventory.UpdateEntryInput
		want error
	}{
		{"sin campos", inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: in}, domain.ErrNoOp},
		{"campos de otro tipo", inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: in, Attrs: inventory.EntryAttrs{Purpose: str("x")}}, domain.ErrNoOp},
		{"cantidad cero", inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: in, Quantity: qty(0)}, domain.ErrInvalidQuantity},
		{"cantidad negativa", inventory.UpdateEntryInput{Kind: entity.KindOut, EntryID: out, Quantity: qty(-2)}, domain.ErrInvalidQuantity},
		{"issued_by vacío", inventory.UpdateEntryInput{Kind: entity.KindOut, EntryID: out, Attrs: inventory.EntryAttrs{IssuedBy: str("  ")}}, domain.ErrInvalidInput},
		{"entrada inexistente", inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: 404, Quantity: qty(1)}, domain.ErrNotFound},
		// el ID de la salida no existe como entrada
		{"tipo equivocado", inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: out + 100, Quantity: qty(1)}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.UpdateEntry(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			// repetir el rechazo produce el mismo tipo de error
			assert.ErrorIs(t, e.UpdateEntry(context.Background(), tt.in), tt.want)
			assert.Equal(t, before, store.Snapshot())
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEntry_Validaciones(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	before := store.Snapshot()

	_, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindIn, ProductID: p, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindOut, ProductID: p, Quantity: -1, Attrs: inventory.EntryAttrs{IssuedBy: str("a")}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindOut, ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "issued_by es obligatorio en salidas")

	_, err = e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: "ADJUST", ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, before, store.Snapshot())
}

func TestCreateEntry_FechaExplicita(t *testing.T) {
	at := time.Date(2024, 12, 24, 8, 30, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	e := inventory.NewEngine(store, inventory.WithClock(func() time.Time { return now }))
	p := newProduct(t, store, "P")

	a, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindIn, ProductID: p, Quantity: 1})
	require.NoError(t, err)
	b, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindIn, ProductID: p, Quantity: 1, Attrs: inventory.EntryAttrs{OccurredAt: &at}})
	require.NoError(t, err)

	ea, _ := store.StockIns().GetByID(context.Background(), a)
	eb, _ := store.StockIns().GetByID(context.Background(), b)
	assert.Equal(t, now, ea.OccurredAt)
	assert.Equal(t, at, eb.OccurredAt)
}

func TestSaldoQueDesborda_CantidadInvalida(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	small := stockIn(t, e, p, 1)
	stockIn(t, e, p, 5)
	before := store.Snapshot()

	_, err := e.CreateEntry(context.Background(), inventory.CreateEntryInput{
		Kind: entity.KindIn, ProductID: p, Quantity: math.MaxInt64,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before, store.Snapshot())

	err = e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{
		Kind: entity.KindIn, EntryID: small, Quantity: qty(math.MaxInt64),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, domain.ErrStoreFailure)
	assert.Equal(t, before, store.Snapshot())
	assert.Equal(t, "invalid_quantity", inventory.Outcome(err))
}

func TestDeleteEntry_SalidaDevuelveStock(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	stockIn(t, e, p, 10)
	out, err := stockOut(e, p, 7, "alice")
	require.NoError(t, err)

	require.NoError(t, e.DeleteEntry(context.Background(), entity.KindOut, out))
	assert.Equal(t, int64(10), balance(t, store, p))
	assertConsistent(t, store)

	assert.ErrorIs(t, e.DeleteEntry(context.Background(), entity.KindOut, out), domain.ErrNotFound)
}

func TestDeleteEntry_EntradaConsumidaSeRechaza(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	in := stockIn(t, e, p, 10)
	_, err := stockOut(e, p, 6, "alice")
	require.NoError(t, err)
	before := store.Snapshot()

	err = e.DeleteEntry(context.Background(), entity.KindIn, in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, e.DeleteEntry(context.Background(), entity.KindIn, in), domain.ErrInsufficientStock)
	assert.Equal(t, before, store.Snapshot())
}

func TestDeleteProduct_BorraMovimientosQueNetanCero(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	other := newProduct(t, store, "Otro")
	stockIn(t, e, p, 5)
	stockIn(t, e, other, 2)
	_, err := stockOut(e, p, 5, "alice")
	require.NoError(t, err)

	require.NoError(t, e.DeleteProduct(context.Background(), p))

	st := store.Snapshot()
	assert.NotContains(t, st.Products, p)
	for _, in := range st.StockIns {
		assert.NotEqual(t, p, in.ProductID)
	}
	assert.Empty(t, st.StockOut)
	assert.Equal(t, int64(2), balance(t, store, other))
	assert.ErrorIs(t, e.DeleteProduct(context.Background(), p), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del almacenamiento: todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreFailure_RevierteTodo(t *testing.T) {
	boom := errors.New("conexión perdida")
	faults := []struct {
		op  string
		run func(e *inventory.Engine, in, out int64) error
	}{
		{"product.set_quantity", func(e *inventory.Engine, _, _ int64) error {
			_, err := stockOut(e, 1, 1, "alice")
			return err
		}},
		{"stock_in.update", func(e *inventory.Engine, in, _ int64) error {
			return e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: in, Quantity: qty(20)})
		}},
		{"stock_out.delete", func(e *inventory.Engine, _, out int64) error {
			return e.DeleteEntry(context.Background(), entity.KindOut, out)
		}},
		{"product.delete", func(e *inventory.Engine, _, _ int64) error {
			return e.DeleteProduct(context.Background(), 2)
		}},
	}
	for _, f := range faults {
		t.Run(f.op, func(t *testing.T) {
			e, store := setup(t)
			p := newProduct(t, store, "P")
			newProduct(t, store, "Vacío")
			in := stockIn(t, e, p, 10)
			out, err := stockOut(e, p, 3, "alice")
			require.NoError(t, err)
			before := store.Snapshot()

			store.InjectFault(f.op, boom)
			err = f.run(e, in, out)

			assert.ErrorIs(t, err, domain.ErrStoreFailure)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, "store_failure", inventory.Outcome(err))
			assert.Equal(t, before, store.Snapshot(), "no debe quedar escritura parcial")
		})
	}
}

func TestStoreFailure_TimeoutEsperandoBloqueo(t *testing.T) {
	e, store := setup(t)
	p := newProduct(t, store, "P")
	stockIn(t, e, p, 5)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.Run(context.Background(), func(pr repository.ProductRepository, _ repository.StockInRepository, _ repository.StockOutRepository) error {
			if _, err := pr.GetForUpdate(context.Background(), p); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := e.CreateEntry(ctx, inventory.CreateEntryInput{Kind: entity.KindIn, ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int64(5), balance(t, store, p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestConcurrencia_DosSalidasQueJuntasExcedenElSaldo(t *testing.T) {
	for round := 0; round < 20; round++ {
		e, store := setup(t)
		p := newProduct(t, store, "P")
		stockIn(t, e, p, 10)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = stockOut(e, p, 7, "worker")
			}(i)
		}
		wg.Wait()

		var ok, rejected int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Fatalf("error inesperado: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, rejected)
		assert.Equal(t, int64(3), balance(t, store, p))
		assertConsistent(t, store)
	}
}

func TestConcurrencia_MuchasSalidasUnitarias(t *testing.T) {
	e, store := setup(t)
	a := newProduct(t, store, "A")
	b := newProduct(t, store, "B")
	stockIn(t, e, a, 20)
	stockIn(t, e, b, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	success := map[int64]int{}
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := a
			if i%2 == 1 {
				p = b
			}
			if _, err := stockOut(e, p, 1, "worker"); err == nil {
				mu.Lock()
				success[p]++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, success[a])
	assert.Equal(t, 5, success[b])
	assert.Equal(t, int64(0), balance(t, store, a))
	assert.Equal(t, int64(0), balance(t, store, b))
	assertConsistent(t, store)
}

// Secuencias aleatorias de operaciones: después de cada una el invariante se mantiene
// y todo rechazo deja el estado intacto.
func TestPropiedad_SecuenciasAleatorias(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e, store := setup(t)
	products := []int64{newProduct(t, store, "A"), newProduct(t, store, "B"), newProduct(t, store, "C")}
	var ins, outs []int64

	pick := func(ids []int64) int64 {
		if len(ids) == 0 || rng.Intn(10) == 0 {
			return int64(rng.Intn(1000) + 500) // ID inexistente
		}
		return ids[rng.Intn(len(ids))]
	}

	for step := 0; step < 2000; step++ {
		before := store.Snapshot()
		p := products[rng.Intn(len(products))]
		n := int64(rng.Intn(12)) // puede ser 0 → InvalidQuantity
		var err error

		switch rng.Intn(6) {
		case 0:
			var id int64
			id, err = e.CreateEntry(context.Background(), inventory.CreateEntryInput{Kind: entity.KindIn, ProductID: p, Quantity: n})
			if err == nil {
				ins = append(ins, id)
			}
		case 1:
			var id int64
			id, err = stockOut(e, p, n, "alice")
			if err == nil {
				outs = append(outs, id)
			}
		case 2:
			err = e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{Kind: entity.KindIn, EntryID: pick(ins), Quantity: qty(n)})
		case 3:
			err = e.UpdateEntry(context.Background(), inventory.UpdateEntryInput{Kind: entity.KindOut, EntryID: pick(outs), Quantity: qty(n)})
		case 4:
			err = e.DeleteEntry(context.Background(), entity.KindIn, pick(ins))
		case 5:
			err = e.DeleteEntry(context.Background(), entity.KindOut, pick(outs))
		}

		if err != nil {
			require.True(t, domain.IsBusiness(err), "paso %d: error inesperado %v", step, err)
			require.Equal(t, before, store.Snapshot(), "paso %d: rechazo con escritura parcial", step)
		}
		assertConsistent(t, store)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

type recorded struct {
	kind    entity.MovementKind
	op      string
	outcome string
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recorded
}

func (r *fakeRecorder) ObserveAdjustment(kind entity.MovementKind, op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recorded{kind, op, outcome})
}

func TestRecorder_RegistraCadaOperacion(t *testing.T) {
	store := memory.NewStore()
	rec := &fakeRecorder{}
	e := inventory.NewEngine(store, inventory.WithRecorder(rec))
	p := newProduct(t, store, "P")

	stockIn(t, e, p, 2)
	_, _ = stockOut(e, p, 5, "alice")
	_ = e.DeleteProduct(context.Background(), p)

	assert.Equal(t, []recorded{
		{entity.KindIn, inventory.OpCreate, "ok"},
		{entity.KindOut, inventory.OpCreate, "insufficient_stock"},
		{"", inventory.OpDeleteProduct, "non_zero_balance"},
	}, rec.seen)
}
