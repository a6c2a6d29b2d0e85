// Package lexicon holds the word lists (verb subcategorization, modals,
// subordinators...) the annotation rules depend on. The lists are data: a
// yaml table of category -> words, loaded once at start.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Category names a word list of the table.
type Category string

const (
	Naming              Category = "naming"
	AdjectiveComplement Category = "adjective_complement"
	EitherComplement    Category = "either_complement"
	NoSubjectComplement Category = "no_subject_complement"
	NoObject            Category = "no_object"
	ModalPresent        Category = "modal_present"
	ModalPast           Category = "modal_past"
	Be                  Category = "be"
	Linking             Category = "linking"
	LinkingTransitive   Category = "linking_transitive"
	Dative              Category = "dative"
	NotPreposition      Category = "not_preposition"
	Subordinator        Category = "subordinator"
	NounSubordinator    Category = "noun_subordinator"
	AdverbSubordinator  Category = "adverb_subordinator"
)

// Categories returns all the categories the rules need.
func Categories() []Category {
	return []Category{
		Naming, AdjectiveComplement, EitherComplement, NoSubjectComplement,
		NoObject, ModalPresent, ModalPast, Be, Linking, LinkingTransitive,
		Dative, NotPreposition, Subordinator, NounSubordinator, AdverbSubordinator,
	}
}

//go:embed lexicon.yaml
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Lexicon is a read-only word -> categories table. It is safe for concurrent
// use.
type Lexicon struct {
	words map[string]map[Category]bool
}

// fold returns the case folded form of w. A Caser keeps state, a new one is
// created per call.
func fold(w string) string {
	return cases.Fold().String(w)
}

// Default returns the lexicon embedded in the binary. It is parsed once.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(defaultTable)
	})

	if defaultErr != nil {
		// the embedded table is part of the build
		panic(fmt.Sprintf("embedded lexicon: %v", defaultErr))
	}

	return defaultLex
}

// Load reads a lexicon yaml file. An empty path returns the Default lexicon.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return Parse(data)
}

// Parse decodes a yaml table of category -> words. All the categories of
// Categories() must be present.
func Parse(data []byte) (*Lexicon, error) {
	var table map[Category][]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("YAML decoding error: %w", err)
	}

	for _, c := range Categories() {
		if _, ok := table[c]; !ok {
			return nil, fmt.Errorf("missing lexicon category %q", c)
		}
	}

	lx := &Lexicon{
		words: map[string]map[Category]bool{},
	}

	for cat, words := range table {
		for _, w := range words {
			key := fold(w)
			if lx.words[key] == nil {
				lx.words[key] = map[Category]bool{}
			}
			lx.words[key][cat] = true
		}
	}

	return lx, nil
}

// Is reports whether word belongs to the category c.
func (lx *Lexicon) Is(c Category, word string) bool {
	if word == "" {
		return false
	}
	return lx.words[fold(word)][c]
}

// Categories returns the sorted categories of word.
func (lx *Lexicon) Categories(word string) []Category {
	var cats []Category
	for c := range lx.words[fold(word)] {
		cats = append(cats, c)
	}

	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
