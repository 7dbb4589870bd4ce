// Package ledger persists finished hands in SQLite so match results
// survive across sessions.
package ledger

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/wagiedev/bisca-engine-go/internal/ledger/migrations"
)

// ErrDuplicateHand indicates a hand with the same ID is already recorded.
var ErrDuplicateHand = stderrors.New("hand already recorded")

// HandRecord is one finished hand.
type HandRecord struct {
	ID         string
	SessionID  string
	Profile    string
	Engine     string
	Score0     int
	Score1     int
	Gain0      int
	Gain1      int
	Plays      int
	FinishedAt time.Time
}

// Totals aggregates every recorded hand.
type Totals struct {
	Hands int
	Gain0 int
	Gain1 int
}

// Store persists hands in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the ledger database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}

	return s.sqlDB.Close()
}

// RecordHand inserts one hand. An empty ID is filled with a new ULID and a
// zero FinishedAt with the current time. Returns ErrDuplicateHand when the
// ID is already present.
func (s *Store) RecordHand(ctx context.Context, hand HandRecord) (HandRecord, error) {
	if err := ctx.Err(); err != nil {
		return HandRecord{}, err
	}

	if strings.TrimSpace(hand.SessionID) == "" {
		return HandRecord{}, fmt.Errorf("session id is required")
	}

	if hand.ID == "" {
		hand.ID = ulid.Make().String()
	}

	if hand.FinishedAt.IsZero() {
		hand.FinishedAt = time.Now()
	}

	hand.FinishedAt = hand.FinishedAt.UTC().Truncate(time.Millisecond)

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO hands (
		   id, session_id, profile, engine,
		   score0, score1, gain0, gain1, plays, finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hand.ID,
		hand.SessionID,
		hand.Profile,
		hand.Engine,
		hand.Score0,
		hand.Score1,
		hand.Gain0,
		hand.Gain1,
		hand.Plays,
		toMillis(hand.FinishedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return HandRecord{}, fmt.Errorf("hand %s: %w", hand.ID, ErrDuplicateHand)
		}

		return HandRecord{}, fmt.Errorf("insert hand: %w", err)
	}

	return hand, nil
}

// ListHands returns the hands of one session, oldest first.
func (s *Store) ListHands(ctx context.Context, sessionID string) ([]HandRecord, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, session_id, profile, engine,
		        score0, score1, gain0, gain1, plays, finished_at
		   FROM hands
		  WHERE session_id = ?
		  ORDER BY finished_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query hands: %w", err)
	}
	defer rows.Close()

	var hands []HandRecord

	for rows.Next() {
		var (
			hand       HandRecord
			finishedAt int64
		)

		if err := rows.Scan(
			&hand.ID,
			&hand.SessionID,
			&hand.Profile,
			&hand.Engine,
			&hand.Score0,
			&hand.Score1,
			&hand.Gain0,
			&hand.Gain1,
			&hand.Plays,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan hand: %w", err)
		}

		hand.FinishedAt = fromMillis(finishedAt)
		hands = append(hands, hand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hands: %w", err)
	}

	return hands, nil
}

// Totals sums the partidas of every recorded hand.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var totals Totals

	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(gain0), 0), COALESCE(SUM(gain1), 0) FROM hands`,
	).Scan(&totals.Hands, &totals.Gain0, &totals.Gain1)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}

	return totals, nil
}

func isUniqueViolation(err error) bool {
	if sqliteErr, ok := stderrors.AsType[*msqlite.Error](err); ok {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
