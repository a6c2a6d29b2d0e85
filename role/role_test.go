package role

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	s, ok := Verb.Symbol()
	require.True(t, ok)
	assert.Equal(t, '◯', s)

	_, ok = Subject.Symbol()
	assert.False(t, ok)

	_, ok = ToInfinitive.Symbol()
	assert.False(t, ok)
}

func TestKinds(t *testing.T) {
	assert.True(t, Object.IsPrimary())
	assert.False(t, Object.IsChunk())
	assert.True(t, Gerund.IsPhrase())
	assert.True(t, ChunkSubject.IsChunk())
	assert.True(t, None.Valid())
	assert.False(t, Role("complement").Valid())
	assert.True(t, AdjectiveObjectComplement.IsObjectComplement())
	assert.True(t, NounSubjectComplement.IsSubjectComplement())
	assert.True(t, Object.In(Subject, Object))
}

func TestUnmarshal(t *testing.T) {
	var v struct {
		Role1 Role `json:"role1"`
		Role2 Role `json:"role2"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"role1":"direct object","role2":null}`), &v))
	assert.Equal(t, DirectObject, v.Role1)
	assert.Equal(t, None, v.Role2)

	err := json.Unmarshal([]byte(`{"role1":"complement"}`), &v)
	assert.Error(t, err)
}
