package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sent "github.com/revelaction/drawgram/sentence"
	"github.com/revelaction/drawgram/storage"
)

// DocStore reads parsed documents from a directory of JSON files. The doc
// Id is the position of the file in name order.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore lists the JSON files of docDir. Their content is read on
// demand, or all at once with Preload.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	docs := make([]sent.Doc, 0, len(names))
	for idx, name := range names {
		docs = append(docs, sent.Doc{
			Id:    idx,
			Title: name,
		})
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload reads all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc := &h.docs[id] // pointer to modify in place

	full, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Title, err)
	}

	// Copy loaded content into existing metadata struct
	doc.Labels = full.Labels
	doc.Sentences = full.Sentences
	for i := range doc.Sentences {
		doc.Sentences[i].Id = i
		doc.Sentences[i].DocId = doc.Id
	}

	h.loaded[id] = true
	return nil
}

// List returns the docs metadata. Labels are only set for docs already read.
func (h *DocStore) List() ([]sent.Doc, error) {
	list := make([]sent.Doc, len(h.docs))
	for i, d := range h.docs {
		list[i] = sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels}
	}
	return list, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id %d: %w", id, storage.ErrNotFound)
	}

	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}

	return h.docs[id], nil
}

func (h *DocStore) Write(doc sent.Doc) error {
	return errors.New("read-only storage")
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
