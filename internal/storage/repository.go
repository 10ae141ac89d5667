// Package storage is the SQLite-backed ledger store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/store"

	_ "modernc.org/sqlite"
)

const (
	dateLayout = "2006-01-02"
	// fixed-width so lexical order matches time order
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; readers queue behind it instead of hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// SeedIfEmpty loads seed into a freshly created database. Existing data is
// never touched.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, seed store.Seed) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM expenses) +
		(SELECT COUNT(*) FROM friend_payments) +
		(SELECT COUNT(*) FROM group_payments) +
		(SELECT COUNT(*) FROM settings_items)`).Scan(&n); err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "SQLite ledger already populated, skipping seed", "rows", n)
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if err := saveExpenses(ctx, tx, seed.Expenses); err != nil {
		return err
	}
	if err := savePayments(ctx, tx, seed.Payments); err != nil {
		return err
	}
	if err := saveGroups(ctx, tx, seed.Groups); err != nil {
		return err
	}
	for _, kind := range core.ListKinds() {
		if err := saveSettings(ctx, tx, kind, seed.Items(kind)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "SQLite ledger seeded",
		"expenses", len(seed.Expenses),
		"friend_payments", len(seed.Payments),
		"group_payments", len(seed.Groups))
	return nil
}

func (r *SQLiteRepository) Expenses() store.ExpenseStore {
	return &table[core.PersonalExpense]{db: r.db, name: "expenses", load: loadExpenses, save: saveExpenses}
}

func (r *SQLiteRepository) FriendPayments() store.FriendPaymentStore {
	return &table[core.FriendPayment]{db: r.db, name: "friend_payments", load: loadPayments, save: savePayments}
}

func (r *SQLiteRepository) Groups() store.GroupPaymentStore {
	return &table[core.GroupPayment]{db: r.db, name: "group_payments", load: loadGroups, save: saveGroups}
}

func (r *SQLiteRepository) Settings(kind core.ListKind) (store.Collection[core.SettingsItem], error) {
	if !kind.Valid() {
		return nil, core.ErrUnknownListKind
	}
	return &table[core.SettingsItem]{
		db:   r.db,
		name: "settings_items/" + string(kind),
		load: func(ctx context.Context, q queryer) ([]core.SettingsItem, error) {
			return loadSettings(ctx, q, kind)
		},
		save: func(ctx context.Context, tx *sql.Tx, items []core.SettingsItem) error {
			return saveSettings(ctx, tx, kind, items)
		},
	}, nil
}

func (r *SQLiteRepository) Activity() store.ActivityLog { return r }

// Record implements store.ActivityLog
func (r *SQLiteRepository) Record(ctx context.Context, a core.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO activity (id, type, entity, entity_id, amount_cents, summary, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Type, a.Entity, a.EntityID, a.AmountCents, a.Summary, a.At.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent implements store.ActivityLog
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]core.Activity, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, entity, entity_id, amount_cents, summary, at
		 FROM activity ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []core.Activity
	for rows.Next() {
		var (
			a  core.Activity
			at string
		)
		if err := rows.Scan(&a.ID, &a.Type, &a.Entity, &a.EntityID, &a.AmountCents, &a.Summary, &at); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.At, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse activity time %q: %w", at, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ store.Ledger = (*SQLiteRepository)(nil)
