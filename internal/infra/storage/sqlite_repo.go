package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/events"
)

// SQLiteSaveRepository implements SaveRepository for SQLite.
type SQLiteSaveRepository struct {
	db *sql.DB
}

func NewSQLiteSaveRepository(db *sql.DB) *SQLiteSaveRepository {
	return &SQLiteSaveRepository{db: db}
}

func (r *SQLiteSaveRepository) Upsert(ctx context.Context, slotID, name string, state life.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO saves (slot_id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot_id) DO UPDATE SET
			name=excluded.name,
			state=excluded.state,
			updated_at=excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, slotID, name, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert save slot: %w", err)
	}
	return nil
}

func (r *SQLiteSaveRepository) Get(ctx context.Context, slotID string) (*life.State, error) {
	query := `SELECT state FROM saves WHERE slot_id = ?`
	var payload string
	err := r.db.QueryRowContext(ctx, query, slotID).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var state life.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

func (r *SQLiteSaveRepository) List(ctx context.Context) ([]SaveSummary, error) {
	query := `SELECT slot_id, name, state, created_at, updated_at FROM saves ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveSummary
	for rows.Next() {
		var s SaveSummary
		var payload string
		if err := rows.Scan(&s.SlotID, &s.Name, &payload, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		var state life.State
		if err := json.Unmarshal([]byte(payload), &state); err == nil {
			s.Age = state.Age
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteSaveRepository) Delete(ctx context.Context, slotID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE slot_id = ?`, slotID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot_id = ?`, slotID)
	return err
}

// ---------------------------------------------------------
// SQLiteEventRepository
// ---------------------------------------------------------

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, slotID string, entry events.Entry) error {
	query := `
		INSERT INTO events (id, slot_id, kind, game_date, age, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, slotID, string(entry.Kind), entry.GameDate, entry.Age, entry.Message, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]events.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.Entry
	for rows.Next() {
		var e events.Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.GameDate, &e.Age, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Kind = events.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteEventRepository) ListBySlot(ctx context.Context, slotID string) ([]events.Entry, error) {
	query := `SELECT id, kind, game_date, age, message, created_at FROM events WHERE slot_id = ? ORDER BY created_at ASC`
	return r.getMany(ctx, query, slotID)
}

func (r *SQLiteEventRepository) ListByKind(ctx context.Context, slotID string, kind events.Kind) ([]events.Entry, error) {
	query := `SELECT id, kind, game_date, age, message, created_at FROM events WHERE slot_id = ? AND kind = ? ORDER BY created_at ASC`
	return r.getMany(ctx, query, slotID, string(kind))
}
