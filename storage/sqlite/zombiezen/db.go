package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens the corpus database at dbPath, creating it if needed. WAL
// mode is on and every connection enforces foreign keys.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database at %s: %w", dbPath, err)
	}
	return pool, nil
}
