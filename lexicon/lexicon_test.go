package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lx := Default()

	assert.True(t, lx.Is(Naming, "elect"))
	assert.True(t, lx.Is(Naming, "Elect"))
	assert.True(t, lx.Is(Dative, "give"))
	assert.False(t, lx.Is(Dative, "sit"))
	assert.False(t, lx.Is(Be, ""))
	assert.True(t, lx.Is(NotPreposition, "DUE"))

	// consider is in both complement lists
	assert.Equal(t, []Category{AdjectiveComplement, EitherComplement}, lx.Categories("consider"))
}

func TestParseMissingCategory(t *testing.T) {
	_, err := Parse([]byte("naming: [elect]\n"))
	assert.Error(t, err)
}

func TestParseInvalidYaml(t *testing.T) {
	_, err := Parse([]byte("naming: [elect\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	lx, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), lx)

	data, err := os.ReadFile("lexicon.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := append(data, []byte("\nextra: [whatever]\n")...)
	require.NoError(t, os.WriteFile(path, custom, 0644))

	lx, err = Load(path)
	require.NoError(t, err)
	assert.True(t, lx.Is(Naming, "nominate"))
	assert.True(t, lx.Is(Category("extra"), "whatever"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
