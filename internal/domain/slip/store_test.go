package slip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreCreateThenGetAppliesDefaults(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.Create(ctx, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	assert.Equal(t, "", got.CompanyName)
	assert.Equal(t, "", got.Designation)
	assert.Equal(t, "", got.BankName)
	assert.Zero(t, got.BasicSalary)
	assert.Zero(t, got.HRA)
	assert.Zero(t, got.PF)
	assert.Zero(t, got.OtherDeductions)
}

func TestMemStoreCreateRequiresEmployeeName(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.Create(ctx, map[string]any{"monthYear": "November 2025"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "failed create must not persist anything")
}

func TestMemStoreUpdate(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.Create(ctx, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
		"basicSalary":  50000.0,
	})
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, map[string]any{"hra": 25000.0})
	require.NoError(t, err)

	assert.Equal(t, 25000.0, updated.HRA)
	assert.Equal(t, 50000.0, updated.BasicSalary, "unspecified fields keep prior values")
	assert.Equal(t, "John Doe", updated.EmployeeName)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt is immutable")
}

func TestMemStoreUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.Create(ctx, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})
	require.NoError(t, err)

	_, err = store.Update(ctx, "no-such-id", map[string]any{"hra": 25000.0})
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created, records[0])
}

func TestMemStoreUpdateCannotClearRequiredField(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.Create(ctx, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})
	require.NoError(t, err)

	_, err = store.Update(ctx, created.ID, map[string]any{"employeeName": ""})
	assert.True(t, IsValidation(err))

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.EmployeeName)
}

func TestMemStoreDeleteTwice(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.Create(ctx, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Delete(ctx, created.ID), ErrNotFound)

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreListNewestFirst(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	clock := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := store.Create(ctx, map[string]any{"employeeName": "A", "monthYear": "September 2025"})
	require.NoError(t, err)
	second, err := store.Create(ctx, map[string]any{"employeeName": "B", "monthYear": "October 2025"})
	require.NoError(t, err)
	third, err := store.Create(ctx, map[string]any{"employeeName": "C", "monthYear": "November 2025"})
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, third.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, first.ID, records[2].ID)
}
