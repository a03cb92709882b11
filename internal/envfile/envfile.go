// Package envfile reads and writes the key=value environment file
// consumed by the bot process.
package envfile

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	KeyBotToken     = "BOT_TOKEN"
	KeyDatabasePath = "DATABASE_PATH"
)

// PlaceholderToken is written when no real token is configured. The
// operator is expected to replace it during the confirmation pause;
// nothing here enforces that.
const PlaceholderToken = "PASTE-TOKEN-HERE"

// Render produces the file body. Key order is fixed so repeated runs
// produce byte-identical output.
func Render(token, databasePath string) string {
	return fmt.Sprintf("%v=%v\n%v=%v\n", KeyBotToken, token, KeyDatabasePath, databasePath)
}

// Write overwrites path with a fresh env file. Any existing file is
// replaced without backup.
func Write(path, token, databasePath string) error {
	return os.WriteFile(path, []byte(Render(token, databasePath)), 0o600)
}

// Read parses an existing env file. Missing file is an error; the
// caller decides whether that matters.
func Read(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("error reading env file %v: %w", path, err)
	}
	return vars, nil
}

// Diff returns the character diff between the current file at path (an
// absent file diffs as empty) and the content a write would produce.
func Diff(path, token, databasePath string) []diffmatchpatch.Diff {
	var current string
	if raw, err := os.ReadFile(path); err == nil {
		current = string(raw)
	}
	dmp := diffmatchpatch.New()
	return dmp.DiffMain(current, Render(token, databasePath), false)
}
