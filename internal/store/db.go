package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

const (
	MemoryPath = ":memory:"
	// DBFile is the database file name inside the agent data folder.
	DBFile = "forgedfate.duckdb"
)

// NewDB opens a DuckDB database at the given path, creating its folder if needed.
// Use ":memory:" for an in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database folder: %w", err)
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// DuckDB is single-writer. One connection also serializes the settings upserts.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Keep extensions next to the database, ~/.duckdb may be read-only.
	if path != MemoryPath {
		extDir := filepath.Dir(path)
		if _, err := conn.Exec(fmt.Sprintf("SET extension_directory = '%s'", extDir)); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("setting extension directory: %w", err)
		}
	}

	return conn, nil
}

// PathIn returns the database path inside the data folder.
// An empty folder selects an in-memory database.
func PathIn(dataFolder string) string {
	if dataFolder == "" {
		return MemoryPath
	}
	return filepath.Join(dataFolder, DBFile)
}
