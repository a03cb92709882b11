// Package dbcheck probes the bot's sqlite database. The schema belongs
// to the bot; this only verifies the file opens and passes a
// quick_check.
package dbcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

var ErrDatabaseMissing = errors.New("database file not found")

func Check(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseMissing, path)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%v?mode=ro", path))
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		return fmt.Errorf("quick_check on %v: %w", path, err)
	}
	if result != "ok" {
		return fmt.Errorf("database %v failed quick_check: %v", path, result)
	}
	return nil
}
