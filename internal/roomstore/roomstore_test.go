package roomstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Lalith0024/unistay/database"
	"github.com/Lalith0024/unistay/internal/db"
	"github.com/Lalith0024/unistay/pkg/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqliteRoomStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, database.RunSqliteMigrations(conn))
	return NewWithSqliteStore(conn, nil)
}

func TestList_Empty(t *testing.T) {
	s := newTestStore(t)

	rooms, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}

func TestSeed_DefaultRooms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultRooms()), n)

	rooms, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, n)

	byNumber := map[string]models.Room{}
	for _, r := range rooms {
		byNumber[r.Number] = r
	}
	assert.Equal(t, models.RoomFull, byNumber["A-101"].Status)
	assert.Equal(t, models.RoomAvailable, byNumber["A-102"].Status)
	assert.Equal(t, models.RoomMaintenance, byNumber["B-203"].Status)
	assert.Equal(t, "A-101", rooms[0].Number, "rooms are ordered by number")
}

func TestSeed_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)
	first, err := s.List(ctx)
	require.NoError(t, err)

	_, err = s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSeed_ReplacesInventory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)

	_, err = s.Seed(ctx, []models.Room{{Number: "Z-1", Block: "Z", Capacity: 1}})
	require.NoError(t, err)

	rooms, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Z-1", rooms[0].Number)
	assert.Equal(t, int64(1), rooms[0].ID)
}

func TestSeed_InvalidRoomLeavesTableUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)

	tests := []struct {
		name string
		room models.Room
	}{
		{"no number", models.Room{Capacity: 1}},
		{"zero capacity", models.Room{Number: "X-1"}},
		{"over occupied", models.Room{Number: "X-1", Capacity: 1, Occupied: 2}},
		{"unknown status", models.Room{Number: "X-1", Capacity: 1, Status: "closed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Seed(ctx, []models.Room{tt.room})
			var valErr *models.ValidationError
			require.ErrorAs(t, err, &valErr)

			rooms, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, rooms, len(DefaultRooms()))
		})
	}
}

func TestSeed_DuplicateNumberRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Seed(ctx, DefaultRooms())
	require.NoError(t, err)

	_, err = s.Seed(ctx, []models.Room{
		{Number: "D-1", Block: "D", Capacity: 1},
		{Number: "D-1", Block: "D", Capacity: 2},
	})
	var dupErr *db.DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "number", dupErr.Field)

	rooms, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, len(DefaultRooms()), "failed seed must not delete the old inventory")
}

func TestSeed_LeavesCallerRoomsUnchanged(t *testing.T) {
	s := newTestStore(t)

	rooms := []models.Room{
		{Number: "D-401", Block: "D", Capacity: 2, Occupied: 2},
		{Number: "D-402", Block: "D", Capacity: 2},
	}
	_, err := s.Seed(context.Background(), rooms)
	require.NoError(t, err)

	assert.Empty(t, rooms[0].Status)
	assert.Empty(t, rooms[1].Status)

	stored, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, models.RoomFull, stored[0].Status)
	assert.Equal(t, models.RoomAvailable, stored[1].Status)
}
