package main

import (
	"fmt"
	"os"

	"github.com/revelaction/drawgram/storage"
	"github.com/revelaction/drawgram/storage/filesystem"
	"github.com/revelaction/drawgram/storage/sqlite/zombiezen"
)

// NewDocRepository opens the parsed documents at path: a directory of JSON
// docs or a SQLite database.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func (e *env) docRepository() (storage.DocRepository, error) {
	return NewDocRepository(e.pool, e.cfg.DocPath)
}
