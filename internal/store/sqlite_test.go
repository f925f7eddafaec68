package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medigrid/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sample() model.Appointment {
	return model.Appointment{
		DateIndex:  1,
		Date:       "2026-09-01",
		StaffID:    "doc-kim",
		StaffName:  "김지원",
		StaffColor: "#4caf50",
		StartTime:  "10:00",
		EndTime:    "11:00",
		Title:      "X-ray",
		Type:       model.TypeReservation,
	}
}

func TestCreateAssignsID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	persisted, err := db.Create(ctx, sample())
	require.NoError(t, err)
	assert.NotEmpty(t, persisted.ID)
	assert.False(t, persisted.CreatedAt.IsZero())

	all, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, persisted.ID, all[0].ID)
	assert.Equal(t, "김지원", all[0].StaffName)
	assert.Equal(t, model.TypeReservation, all[0].Type)
}

func TestUpdateReplacesRecord(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	persisted, err := db.Create(ctx, sample())
	require.NoError(t, err)

	persisted.Title = "MRI"
	persisted.EndTime = "11:30"
	require.NoError(t, db.Update(ctx, persisted))

	all, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "MRI", all[0].Title)
	assert.Equal(t, "11:30", all[0].EndTime)
}

func TestUpdateMissing(t *testing.T) {
	db := openTestDB(t)
	a := sample()
	a.ID = "ghost"
	assert.Error(t, db.Update(context.Background(), a))
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	persisted, err := db.Create(ctx, sample())
	require.NoError(t, err)

	require.NoError(t, db.Delete(ctx, persisted.ID))
	all, err := db.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Error(t, db.Delete(ctx, persisted.ID))
}

func TestFetchAllOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	later := sample()
	later.StartTime = "15:00"
	later.EndTime = "15:30"
	_, err := db.Create(ctx, later)
	require.NoError(t, err)

	earlier := sample()
	_, err = db.Create(ctx, earlier)
	require.NoError(t, err)

	all, err := db.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "10:00", all[0].StartTime)
	assert.Equal(t, "15:00", all[1].StartTime)
}
