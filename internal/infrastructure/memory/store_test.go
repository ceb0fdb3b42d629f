package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, name string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Unit: "pcs"}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestRun_RollbackDeshaceEscrituras(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")
	before := s.Snapshot()
	boom := errors.New("boom")

	err := s.Run(context.Background(), func(pr repository.ProductRepository, in repository.StockInRepository, out repository.StockOutRepository) error {
		require.NoError(t, in.Create(context.Background(), &entity.StockIn{ProductID: p.ID, Quantity: 5}))
		require.NoError(t, pr.SetQuantity(context.Background(), p.ID, 5))
		require.NoError(t, pr.Delete(context.Background(), p.ID))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, s.Snapshot())
}

func TestRun_CommitConservaEscrituras(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")

	err := s.Run(context.Background(), func(pr repository.ProductRepository, in repository.StockInRepository, _ repository.StockOutRepository) error {
		if err := in.Create(context.Background(), &entity.StockIn{ProductID: p.ID, Quantity: 5}); err != nil {
			return err
		}
		return pr.SetQuantity(context.Background(), p.ID, 5)
	})
	require.NoError(t, err)

	st := s.Snapshot()
	assert.Equal(t, int64(5), st.Products[p.ID].Quantity)
	assert.Equal(t, int64(5), st.MovementSum(p.ID))
}

func TestSetQuantity_RechazaNegativo(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")
	assert.ErrorIs(t, s.Products().SetQuantity(context.Background(), p.ID, -1), errCheckViolation)
}

func TestCreate_NombreDuplicado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "Tornillo")
	err := s.Products().Create(context.Background(), &entity.Product{Name: "Tornillo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockIn_ProductoInexistente(t *testing.T) {
	s := NewStore()
	err := s.StockIns().Create(context.Background(), &entity.StockIn{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, errForeignKey)
}

func TestLock_EsperaHastaLiberar(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(pr repository.ProductRepository, _ repository.StockInRepository, _ repository.StockOutRepository) error {
			_, _ = pr.GetForUpdate(context.Background(), p.ID)
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	acquired := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(pr repository.ProductRepository, _ repository.StockInRepository, _ repository.StockOutRepository) error {
			_, err := pr.GetForUpdate(context.Background(), p.ID)
			close(acquired)
			return err
		})
	}()

	select {
	case <-acquired:
		t.Fatal("el segundo bloqueo no debía obtenerse mientras el primero sigue activo")
	case <-time.After(30 * time.Millisecond):
	}
	close(release)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("el bloqueo no se liberó al terminar la transacción")
	}
}

func TestLock_Reentrante(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")
	err := s.Run(context.Background(), func(pr repository.ProductRepository, _ repository.StockInRepository, _ repository.StockOutRepository) error {
		if _, err := pr.GetForUpdate(context.Background(), p.ID); err != nil {
			return err
		}
		_, err := pr.GetForUpdate(context.Background(), p.ID)
		return err
	})
	assert.NoError(t, err)
}

func TestInjectFault_SeConsume(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tornillo")
	boom := errors.New("boom")
	s.InjectFault("product.set_quantity", boom)

	assert.ErrorIs(t, s.Products().SetQuantity(context.Background(), p.ID, 3), boom)
	assert.NoError(t, s.Products().SetQuantity(context.Background(), p.ID, 3))
}

func TestList_FiltrosYOrden(t *testing.T) {
	s := NewStore()
	a := seedProduct(t, s, "Arandela")
	b := seedProduct(t, s, "Broca")
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, pid := range []int64{a.ID, b.ID, a.ID, a.ID} {
		require.NoError(t, s.StockIns().Create(context.Background(), &entity.StockIn{
			ProductID: pid, Quantity: int64(i + 1), OccurredAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := s.StockIns().List(context.Background(), entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[0].ID, "más reciente primero")
	assert.Equal(t, "Arandela", all[0].ProductName)

	from := base.Add(90 * time.Minute)
	filtered, err := s.StockIns().List(context.Background(), entity.MovementFilter{ProductID: a.ID, From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(4), filtered[0].ID)

	products, err := s.Products().List(context.Background(), repository.ProductFilter{Search: "bro"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Broca", products[0].Name)
}

func TestGetByID_IncluyeNombreDeProducto(t *testing.T) {
	s := NewStore()
	p := seedProduct(t, s, "Tuerca")
	in := &entity.StockIn{ProductID: p.ID, Quantity: 3}
	require.NoError(t, s.StockIns().Create(context.Background(), in))
	out := &entity.StockOut{ProductID: p.ID, Quantity: 1}
	require.NoError(t, s.StockOuts().Create(context.Background(), out))

	gotIn, err := s.StockIns().GetByID(context.Background(), in.ID)
	require.NoError(t, err)
	require.NotNil(t, gotIn)
	assert.Equal(t, "Tuerca", gotIn.ProductName)

	gotOut, err := s.StockOuts().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, gotOut)
	assert.Equal(t, "Tuerca", gotOut.ProductName)
}
