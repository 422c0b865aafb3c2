// Package roomstore keeps the hostel's room inventory in SQLite.
package roomstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Lalith0024/unistay/internal/db"
	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/pkg/models"
)

// Store lists rooms and replaces the whole inventory.
type Store interface {
	// List returns every room ordered by number.
	List(ctx context.Context) ([]models.Room, error)

	// Seed replaces all rooms with the given set in one transaction.
	// Running it twice with the same rooms leaves the same table.
	Seed(ctx context.Context, rooms []models.Room) (int, error)
}

type sqliteRoomStore struct {
	db  *sql.DB
	log *slog.Logger
}

func NewWithSqliteStore(db *sql.DB, logger *slog.Logger) *sqliteRoomStore {
	return &sqliteRoomStore{
		db:  db,
		log: logutil.OrDiscard(logger),
	}
}

func (s *sqliteRoomStore) List(ctx context.Context) ([]models.Room, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "ListRooms")()
	errMsg := "failed to list rooms"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, block, capacity, occupied, monthly_fee, status
		FROM rooms ORDER BY number`)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.Block, &r.Capacity, &r.Occupied, &r.MonthlyFee, &r.Status); err != nil {
			return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	return rooms, nil
}

func (s *sqliteRoomStore) Seed(ctx context.Context, rooms []models.Room) (int, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "seeded rooms", "count", len(rooms))()
	errMsg := "failed to seed rooms"

	// normalize a copy so the caller's rooms keep their unset statuses
	rooms = slices.Clone(rooms)
	for i := range rooms {
		if err := normalize(&rooms[i]); err != nil {
			return 0, logutil.DebugAndWrapErr(s.log, errMsg, err, "index", i)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	// restart ids so reseeding yields the same rows
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'rooms'`); err != nil {
		return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rooms (number, block, capacity, occupied, monthly_fee, status)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer stmt.Close()

	for _, r := range rooms {
		if _, err := stmt.ExecContext(ctx, r.Number, r.Block, r.Capacity, r.Occupied, r.MonthlyFee, string(r.Status)); err != nil {
			if dup, dupErr := db.WrapIfDuplicateConstraint(err); dup {
				return 0, logutil.DebugAndWrapErr(s.log, errMsg, dupErr, "number", r.Number)
			}
			return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err), "number", r.Number)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	return len(rooms), nil
}

// normalize validates r and derives the status when it is unset.
func normalize(r *models.Room) error {
	switch {
	case r.Number == "":
		return models.NewValidationError("room number must not be empty")
	case r.Capacity <= 0:
		return models.NewValidationError(fmt.Sprintf("room %s: capacity must be positive", r.Number))
	case r.Occupied < 0 || r.Occupied > r.Capacity:
		return models.NewValidationError(fmt.Sprintf("room %s: occupied must be between 0 and %d", r.Number, r.Capacity))
	}

	switch r.Status {
	case "":
		r.Status = models.RoomAvailable
		if r.Occupied == r.Capacity {
			r.Status = models.RoomFull
		}
	case models.RoomAvailable, models.RoomFull, models.RoomMaintenance:
	default:
		return models.NewValidationError(fmt.Sprintf("room %s: unknown status %q", r.Number, r.Status))
	}
	return nil
}

// DefaultRooms returns the stock inventory used by `unistay seed`.
func DefaultRooms() []models.Room {
	return []models.Room{
		{Number: "A-101", Block: "A", Capacity: 2, Occupied: 2, MonthlyFee: 450000},
		{Number: "A-102", Block: "A", Capacity: 2, Occupied: 1, MonthlyFee: 450000},
		{Number: "A-103", Block: "A", Capacity: 3, Occupied: 0, MonthlyFee: 380000},
		{Number: "B-201", Block: "B", Capacity: 1, Occupied: 1, MonthlyFee: 600000},
		{Number: "B-202", Block: "B", Capacity: 1, Occupied: 0, MonthlyFee: 600000},
		{Number: "B-203", Block: "B", Capacity: 4, Occupied: 0, MonthlyFee: 320000, Status: models.RoomMaintenance},
		{Number: "C-301", Block: "C", Capacity: 3, Occupied: 2, MonthlyFee: 380000},
		{Number: "C-302", Block: "C", Capacity: 3, Occupied: 3, MonthlyFee: 380000},
	}
}
