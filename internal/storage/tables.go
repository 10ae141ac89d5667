package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"spendwise/internal/core"
)

// table maps one ordered collection onto SQL rows. Updates rewrite the
// whole collection inside a single transaction.
type table[T any] struct {
	db   *sql.DB
	name string
	load func(ctx context.Context, q queryer) ([]T, error)
	save func(ctx context.Context, tx *sql.Tx, items []T) error
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	return t.load(ctx, t.db)
}

func (t *table[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s update: %w", t.name, err)
	}
	defer tx.Rollback()

	cur, err := t.load(ctx, tx)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	if err := t.save(ctx, tx, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s update: %w", t.name, err)
	}
	slog.DebugContext(ctx, "Collection rewritten", "table", t.name, "rows", len(next))
	return nil
}

func parseDate(s string) (core.Date, error) {
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("stored date: %w", err)
	}
	return d, nil
}

func loadExpenses(ctx context.Context, q queryer) ([]core.PersonalExpense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, category, payment_mode, date, description, amount_cents
		 FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.PersonalExpense
	for rows.Next() {
		var (
			e    core.PersonalExpense
			date string
		)
		if err := rows.Scan(&e.ID, &e.Category, &e.PaymentMode, &date, &e.Description, &e.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func saveExpenses(ctx context.Context, tx *sql.Tx, items []core.PersonalExpense) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	for i, e := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, position, category, payment_mode, date, description, amount_cents)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Category, e.PaymentMode, e.Date.Format(dateLayout), e.Description, e.Amount.Cents)
		if err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}
	return nil
}

func loadPayments(ctx context.Context, q queryer) ([]core.FriendPayment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, direction, friend, amount_cents, description, date, settled
		 FROM friend_payments ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query friend payments: %w", err)
	}
	defer rows.Close()

	var out []core.FriendPayment
	for rows.Next() {
		var (
			p    core.FriendPayment
			dir  string
			date string
		)
		if err := rows.Scan(&p.ID, &dir, &p.Friend, &p.Amount.Cents, &p.Description, &date, &p.Settled); err != nil {
			return nil, fmt.Errorf("scan friend payment: %w", err)
		}
		p.Direction = core.Direction(dir)
		if p.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func savePayments(ctx context.Context, tx *sql.Tx, items []core.FriendPayment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM friend_payments`); err != nil {
		return fmt.Errorf("clear friend payments: %w", err)
	}
	for i, p := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO friend_payments (id, position, direction, friend, amount_cents, description, date, settled)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, string(p.Direction), p.Friend, p.Amount.Cents, p.Description, p.Date.Format(dateLayout), p.Settled)
		if err != nil {
			return fmt.Errorf("insert friend payment %s: %w", p.ID, err)
		}
	}
	return nil
}

func loadGroups(ctx context.Context, q queryer) ([]core.GroupPayment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, description, total_cents, paid_by, split_type, date
		 FROM group_payments ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query group payments: %w", err)
	}

	var (
		out   []core.GroupPayment
		index = map[string]int{}
	)
	for rows.Next() {
		var (
			g     core.GroupPayment
			split string
			date  string
		)
		if err := rows.Scan(&g.ID, &g.Description, &g.TotalAmount.Cents, &g.PaidBy, &split, &date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group payment: %w", err)
		}
		g.SplitType = core.SplitType(split)
		if g.Date, err = parseDate(date); err != nil {
			rows.Close()
			return nil, err
		}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	prows, err := q.QueryContext(ctx,
		`SELECT group_id, name, amount_cents, is_self, settled
		 FROM group_participants ORDER BY group_id, idx`)
	if err != nil {
		return nil, fmt.Errorf("query group participants: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var (
			gid string
			p   core.Participant
		)
		if err := prows.Scan(&gid, &p.Name, &p.Amount.Cents, &p.IsSelf, &p.Settled); err != nil {
			return nil, fmt.Errorf("scan group participant: %w", err)
		}
		if i, ok := index[gid]; ok {
			out[i].Participants = append(out[i].Participants, p)
		}
	}
	return out, prows.Err()
}

func saveGroups(ctx context.Context, tx *sql.Tx, items []core.GroupPayment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_participants`); err != nil {
		return fmt.Errorf("clear group participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_payments`); err != nil {
		return fmt.Errorf("clear group payments: %w", err)
	}
	for i, g := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_payments (id, position, description, total_cents, paid_by, split_type, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.ID, i, g.Description, g.TotalAmount.Cents, g.PaidBy, string(g.SplitType), g.Date.Format(dateLayout))
		if err != nil {
			return fmt.Errorf("insert group payment %s: %w", g.ID, err)
		}
		for j, p := range g.Participants {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO group_participants (group_id, idx, name, amount_cents, is_self, settled)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				g.ID, j, p.Name, p.Amount.Cents, p.IsSelf, p.Settled)
			if err != nil {
				return fmt.Errorf("insert participant %d of %s: %w", j, g.ID, err)
			}
		}
	}
	return nil
}

func loadSettings(ctx context.Context, q queryer, kind core.ListKind) ([]core.SettingsItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name FROM settings_items WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	defer rows.Close()

	var out []core.SettingsItem
	for rows.Next() {
		var it core.SettingsItem
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func saveSettings(ctx context.Context, tx *sql.Tx, kind core.ListKind, items []core.SettingsItem) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM settings_items WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}
	for i, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings_items (kind, id, position, name) VALUES (?, ?, ?, ?)`,
			string(kind), it.ID, i, it.Name)
		if err != nil {
			return fmt.Errorf("insert %s %s: %w", kind, it.ID, err)
		}
	}
	return nil
}
