package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/storage"
	"github.com/foxxcyber/fridgelist/internal/views"
)

func TestReconcileExamples(t *testing.T) {
	items := []models.ShoppingItem{
		item("Milch", 1, "L"),
		item("Mehl", 2, "kg"),
	}

	out, removed, reduced := Reconcile(items, map[int]models.Amount{
		0: models.NumericAmount(1.5),
		1: models.NumericAmount(0.3),
	})

	require.Len(t, out, 1)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, reduced)
	assert.Equal(t, "Mehl", out[0].Name)
	assert.Equal(t, "kg", out[0].Unit)
	assert.InDelta(t, 1.7, amountOf(t, out[0]), 1e-9)
}

func TestReconcileKeepsUnselectedInOrder(t *testing.T) {
	items := []models.ShoppingItem{
		item("Äpfel", 6, "Stück"),
		item("Butter", 250, "g"),
		textItem("Salz", "etwas"),
		item("Zucker", 1, "kg"),
	}

	out, removed, reduced := Reconcile(items, map[int]models.Amount{
		1: models.NumericAmount(250),
	})

	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, reduced)
	assert.Empty(t, cmp.Diff([]models.ShoppingItem{items[0], items[2], items[3]}, out))
}

func TestReconcileRemovesSelectedTextAmounts(t *testing.T) {
	items := []models.ShoppingItem{
		textItem("Salz", "etwas"),
		item("Pfeffer", 1, "Prise"),
	}

	out, removed, reduced := Reconcile(items, map[int]models.Amount{
		0: models.NumericAmount(0),
		1: models.TextAmount("etwas"),
	})

	assert.Empty(t, out)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, reduced)
}

func TestReconcileNeverAddsItems(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 200; n++ {
		required := float64(rng.Intn(10000)) / 100
		have := float64(rng.Intn(10000)) / 100

		out, removed, reduced := Reconcile([]models.ShoppingItem{item("X", required, "g")}, map[int]models.Amount{
			0: models.NumericAmount(have),
		})

		if required-have <= 0 {
			assert.Empty(t, out, "required=%v have=%v", required, have)
			assert.Equal(t, 1, removed)
			continue
		}
		require.Len(t, out, 1, "required=%v have=%v", required, have)
		assert.Equal(t, 1, reduced)
		assert.InDelta(t, required-have, amountOf(t, out[0]), 0.005+1e-9)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 0.13, roundHalfUp(0.125))
	assert.Equal(t, 1.7, roundHalfUp(1.7))
	assert.Equal(t, 2.0, roundHalfUp(1.999))
}

func TestNewFridgeCheckWithoutList(t *testing.T) {
	ctx := context.Background()
	records := newRecords()

	_, err := NewFridgeCheck(ctx, records)
	assert.ErrorIs(t, err, ErrNoShoppingList)

	saveList(t, records)
	_, err = NewFridgeCheck(ctx, records)
	assert.ErrorIs(t, err, ErrNoShoppingList)
}

func TestFridgeCheckToggle(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	saveList(t, records, item("Milch", 1, "l"), textItem("Salz", "etwas"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)

	require.NoError(t, check.Toggle(0))
	require.NoError(t, check.Toggle(1))
	sel := check.Selection()
	assert.True(t, sel[0].Equal(models.NumericAmount(1)))
	assert.True(t, sel[1].Equal(models.TextAmount("etwas")))

	require.NoError(t, check.Toggle(0))
	assert.NotContains(t, check.Selection(), 0)

	assert.ErrorIs(t, check.Toggle(2), ErrItemIndexOutOfRange)
	assert.ErrorIs(t, check.Toggle(-1), ErrItemIndexOutOfRange)
}

func TestFridgeCheckSetHaveAmount(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	saveList(t, records, item("Mehl", 2, "kg"), textItem("Salz", "etwas"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)

	assert.False(t, check.SetHaveAmount(0, "1"), "unselected items are ignored")

	require.NoError(t, check.Toggle(0))
	require.NoError(t, check.Toggle(1))

	assert.True(t, check.SetHaveAmount(0, "0,5"))
	assert.True(t, check.Selection()[0].Equal(models.NumericAmount(0.5)))

	for _, raw := range []string{"", "abc", "-1", "NaN", "Inf"} {
		assert.False(t, check.SetHaveAmount(0, raw), raw)
	}
	assert.True(t, check.Selection()[0].Equal(models.NumericAmount(0.5)), "rejected input keeps the previous value")

	assert.False(t, check.SetHaveAmount(1, "3"), "text amounts take no input")
	assert.True(t, check.Selection()[1].Equal(models.TextAmount("etwas")))
}

func TestFridgeCheckApplyEmptySelection(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	saveList(t, records, item("Milch", 1, "l"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)

	result, err := check.Apply(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsConfirmation, result.Outcome)
	assert.Nil(t, result.Navigate)
	assert.Zero(t, result.Removed)
	assert.Zero(t, result.Reduced)

	result, err = check.Apply(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, views.RouteShopping, result.Navigate.Route)
	assert.Zero(t, result.Removed)
	assert.Zero(t, result.Reduced)

	list, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestFridgeCheckApply(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	saveList(t, records, item("Milch", 1, "L"), item("Mehl", 2, "kg"), item("Eier", 6, "Stück"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)
	require.NoError(t, check.Toggle(0))
	require.NoError(t, check.Toggle(1))
	require.True(t, check.SetHaveAmount(0, "1.5"))
	require.True(t, check.SetHaveAmount(1, "0.3"))

	result, err := check.Apply(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, result.Outcome)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Reduced)
	assert.Equal(t, "Kühlschrank-Check abgeschlossen!\n1 Artikel entfernt.\n1 Artikel reduziert.", result.Message)
	assert.Equal(t, views.RouteShopping, result.Navigate.Route)

	list, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Mehl", list.Items[0].Name)
	assert.InDelta(t, 1.7, amountOf(t, list.Items[0]), 1e-9)
	assert.Equal(t, "Eier", list.Items[1].Name)
	assert.Equal(t, []string{"r1"}, list.RecipeIDs, "list metadata is kept")
}

func TestFridgeCheckApplyStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	saveList(t, records, item("Milch", 1, "l"), item("Brot", 1, "Stück"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)
	require.NoError(t, check.Toggle(1))

	changed := saveList(t, records, item("Brot", 1, "Stück"))

	_, err = check.Apply(ctx, false)
	assert.ErrorIs(t, err, ErrSelectionStale)

	list, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(changed.Items, list.Items))
}

func TestFridgeCheckApplyPersistenceError(t *testing.T) {
	ctx := context.Background()
	records := &faultyRecords{Records: newRecords()}
	saveList(t, records, item("Milch", 1, "l"))

	check, err := NewFridgeCheck(ctx, records)
	require.NoError(t, err)
	require.NoError(t, check.Toggle(0))

	records.saveListErr = errDiskFull
	_, err = check.Apply(ctx, false)
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
	assert.Equal(t, "quota exceeded", err.Error())
	assert.ErrorIs(t, err, errDiskFull)
}

func TestFridgeSessions(t *testing.T) {
	ctx := context.Background()
	records := newRecords()
	sessions := NewFridgeSessions(0)

	open, err := sessions.With("device-1", func(*FridgeCheck) error { return nil })
	assert.False(t, open)
	assert.NoError(t, err)

	_, err = sessions.Open(ctx, "device-1", records)
	assert.ErrorIs(t, err, ErrNoShoppingList)

	saveList(t, records, item("Milch", 1, "l"))
	_, err = sessions.Open(ctx, "device-1", records)
	require.NoError(t, err)

	open, err = sessions.With("device-1", func(check *FridgeCheck) error {
		return check.Toggle(0)
	})
	assert.True(t, open)
	assert.NoError(t, err)

	open, _ = sessions.With("device-2", func(*FridgeCheck) error { return nil })
	assert.False(t, open, "sessions are per owner")

	sessions.Discard("device-1")
	open, _ = sessions.With("device-1", func(*FridgeCheck) error { return nil })
	assert.False(t, open)
}

func TestReconcileSummary(t *testing.T) {
	assert.Equal(t, "Kühlschrank-Check abgeschlossen!\n2 Artikel entfernt.", reconcileSummary(2, 0))
	assert.Equal(t, "Kühlschrank-Check abgeschlossen!\n1 Artikel reduziert.", reconcileSummary(0, 1))
	assert.Equal(t, "Kühlschrank-Check abgeschlossen!", reconcileSummary(0, 0))
}

func TestFridgeSessionsExpireIdleChecks(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	sessions := NewFridgeSessions(time.Hour)
	sessions.now = func() time.Time { return clock }

	first, second := newRecords(), storage.New(storage.NewMemoryBackend()).For("device-2")
	saveList(t, first, item("Milch", 1, "l"))
	saveList(t, second, item("Brot", 1, "Stück"))

	_, err := sessions.Open(ctx, "device-1", first)
	require.NoError(t, err)

	clock = clock.Add(45 * time.Minute)
	_, err = sessions.Open(ctx, "device-2", second)
	require.NoError(t, err)
	assert.Equal(t, 2, sessions.Len())

	clock = clock.Add(30 * time.Minute)
	open, _ := sessions.With("device-1", func(*FridgeCheck) error { return nil })
	assert.False(t, open, "idle for 75 minutes")

	open, _ = sessions.With("device-2", func(*FridgeCheck) error { return nil })
	assert.True(t, open, "idle for 30 minutes")
	assert.Equal(t, 1, sessions.Len())

	clock = clock.Add(50 * time.Minute)
	open, _ = sessions.With("device-2", func(*FridgeCheck) error { return nil })
	assert.True(t, open, "use resets the idle time")
}
