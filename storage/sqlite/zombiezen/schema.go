package zombiezen

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

const docsSchema = `
CREATE TABLE IF NOT EXISTS docs (
	id     INTEGER PRIMARY KEY,
	title  TEXT NOT NULL UNIQUE,
	labels TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sentences (
	doc_id   INTEGER NOT NULL REFERENCES docs(id),
	position INTEGER NOT NULL,
	data     TEXT NOT NULL,
	PRIMARY KEY (doc_id, position)
);
`

// CreateDocTables creates the docs and sentences tables if they do not
// exist.
func CreateDocTables(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	// ExecuteScript handles multi-statement strings.
	if err := sqlitex.ExecuteScript(conn, docsSchema, nil); err != nil {
		return fmt.Errorf("failed to create doc tables: %w", err)
	}

	return nil
}
