package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/drawgram/sentence"
	"github.com/revelaction/drawgram/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore keeps parsed documents in SQLite, one row per sentence.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			if labelsStr := stmt.ColumnText(1); labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc id %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT position, data FROM sentences WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s); err != nil {
				return err
			}
			s.Id = stmt.ColumnInt(0)
			s.DocId = id
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// Write inserts the doc and its sentences in one transaction. The doc gets
// a new id, doc.Id is ignored.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	// Insert Doc
	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for i, sentence := range doc.Sentences {
		data, marshalErr := json.Marshal(sent.Sentence{Text: sentence.Text, Tokens: sentence.Tokens})
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, i, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
	}

	return nil
}
