// Package archive stores instrument histories in a SQLite database.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/etnz/ppr"
	"github.com/etnz/ppr/date"
	_ "modernc.org/sqlite"
)

// Archive is a SQLite database of instrument histories.
//
// Prices are stored as text, with the digits read from the workbook.
type Archive struct {
	db *sql.DB
}

// Open opens, or creates, the archive at path.
func Open(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	a := &Archive{db: db}
	if err := a.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot migrate archive %s: %w", path, err)
	}
	return a, nil
}

// Close closes the database.
func (a *Archive) Close() error { return a.db.Close() }

func (a *Archive) migrate(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS instruments (
  name TEXT PRIMARY KEY,
  slug TEXT NOT NULL,
  current_day TEXT NOT NULL,
  current_value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS quotes (
  instrument TEXT NOT NULL REFERENCES instruments(name) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  day TEXT NOT NULL,
  value TEXT NOT NULL,
  PRIMARY KEY(instrument, seq)
);
CREATE INDEX IF NOT EXISTS idx_quotes_day ON quotes(day);
`)
	return err
}

// Save replaces the archived series of every instrument in h.
// Instruments not in h are left untouched.
func (a *Archive) Save(ctx context.Context, h ppr.Histories) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, name := range h.Names() {
		in := h.Get(name)
		if _, err := tx.ExecContext(ctx, `DELETE FROM quotes WHERE instrument=?`, name); err != nil {
			return fmt.Errorf("cannot clear %q: %w", name, err)
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO instruments(name, slug, current_day, current_value, updated_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		slug=excluded.slug, current_day=excluded.current_day, current_value=excluded.current_value, updated_at=excluded.updated_at
	`, name, ppr.Slug(name), in.Current.Day.String(), in.Current.Value.String(), now)
		if err != nil {
			return fmt.Errorf("cannot save %q: %w", name, err)
		}

		seq := 0
		for on, v := range in.Series.Values() {
			if _, err := tx.ExecContext(ctx, `INSERT INTO quotes(instrument, seq, day, value) VALUES(?, ?, ?, ?)`, name, seq, on.String(), v.String()); err != nil {
				return fmt.Errorf("cannot save %q quote %d: %w", name, seq, err)
			}
			seq++
		}
	}
	return tx.Commit()
}

// Load reads back every archived instrument, series in their saved order.
func (a *Archive) Load(ctx context.Context) (ppr.Histories, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT instrument, day, value FROM quotes ORDER BY instrument, seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []ppr.Quote
	for rows.Next() {
		var name, day, value string
		if err := rows.Scan(&name, &day, &value); err != nil {
			return nil, err
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("corrupted archive: %q: %w", name, err)
		}
		p, err := ppr.ParsePrice(value)
		if err != nil {
			return nil, fmt.Errorf("corrupted archive: %q: %w", name, err)
		}
		quotes = append(quotes, ppr.NewQuote(name, p, on))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ppr.Build(slices.Values(quotes)), nil
}
