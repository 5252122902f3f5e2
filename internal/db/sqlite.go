package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens an embedded database. path may be a file name or a
// full "file:" URI such as "file:x?mode=memory&cache=shared".
func NewSQLiteDB(path string) (*DB, error) {
	handle, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite serialises writers; a single connection avoids SQLITE_BUSY
	// between goroutines of the same process.
	handle.SetMaxOpenConns(1)

	db := &DB{SQL: handle, Dialect: SQLite}
	if err := db.Ping(context.Background()); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	const pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}
