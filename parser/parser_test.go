package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const satResponse = `{"result": [
 {"idx": 0, "text": "She", "pos": "PRON", "tag": "PRP", "dep": "nsubj", "head": "sat", "head_idx": 4, "lemma": "she", "morph": {"Case": "Nom", "Person": "3"}},
 {"idx": 4, "text": "sat", "pos": "VERB", "tag": "VBD", "dep": "ROOT", "head": "sat", "head_idx": 4, "lemma": "sit", "morph": {"Tense": "Past", "VerbForm": "Fin"}},
 {"idx": 8, "text": "on", "pos": "ADP", "tag": "IN", "dep": "prep", "head": "sat", "head_idx": 4, "lemma": "on", "morph": {}},
 {"idx": 11, "text": "the", "pos": "DET", "tag": "DT", "dep": "det", "head": "chair", "head_idx": 15, "lemma": "the", "morph": "Definite=Def|PronType=Art"},
 {"idx": 15, "text": "chair", "pos": "NOUN", "tag": "NN", "dep": "pobj", "head": "on", "head_idx": 8, "lemma": "chair", "morph": "Number=Sing"},
 {"idx": 20, "text": ".", "pos": "PUNCT", "tag": ".", "dep": "punct", "head": "sat", "head_idx": 4, "lemma": ".", "morph": {}}
]}`

func TestParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req parseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "She sat on the chair.", req.Text)

		_, _ = w.Write([]byte(satResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0, zerolog.Nop())
	s, err := c.Parse(context.Background(), "She sat on the chair.")
	require.NoError(t, err)

	assert.Equal(t, "She sat on the chair.", s.Text)
	require.Len(t, s.Tokens, 6)

	sat := s.Tokens[1]
	assert.Equal(t, 4, sat.Idx)
	assert.Equal(t, 4, sat.Head)
	assert.Equal(t, "ROOT", sat.Dep)
	assert.Equal(t, "sit", sat.Lemma)
	assert.Equal(t, "Past", sat.Morph.Tense)
	assert.Equal(t, "Fin", sat.Morph.VerbForm)

	assert.Equal(t, 8, s.Tokens[4].Head)
}

func TestParseEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, zerolog.Nop()).Parse(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoParse)
}

func TestParseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, zerolog.Nop()).Parse(context.Background(), "Hi.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestParseCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(satResponse))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 0, zerolog.Nop()).Parse(ctx, "She sat on the chair.")
	assert.ErrorIs(t, err, context.Canceled)
}
