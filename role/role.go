// Package role defines the closed set of grammatical roles a token can carry
// in a diagram, and the symbols used to draw them.
package role

import (
	"encoding/json"
	"fmt"
)

// Role is a grammatical marker of a token. Primary roles go into role1,
// phrase markers into role2 and chunk functions into role3. role2 may also
// hold a primary role inherited by a clause connector.
type Role string

const (
	None Role = ""

	// Primary roles
	Subject                    Role = "subject"
	Verb                       Role = "verb"
	Object                     Role = "object"
	IndirectObject             Role = "indirect object"
	DirectObject               Role = "direct object"
	Preposition                Role = "preposition"
	PrepositionalObject        Role = "prepositional object"
	Conjunction                Role = "conjunction"
	NounSubjectComplement      Role = "noun subject complement"
	AdjectiveSubjectComplement Role = "adjective subject complement"
	NounObjectComplement       Role = "noun object complement"
	AdjectiveObjectComplement  Role = "adjective object complement"

	// Phrase markers
	ToInfinitive Role = "to infinitive"
	Gerund       Role = "gerund"

	// Chunk functions
	ChunkSubject        Role = "chunk_subject"
	ChunkAdverbModifier Role = "chunk_adverb_modifier"
	ChunkNotDecided     Role = "chunk_not_decide"
)

var primary = map[Role]bool{
	Subject:                    true,
	Verb:                       true,
	Object:                     true,
	IndirectObject:             true,
	DirectObject:               true,
	Preposition:                true,
	PrepositionalObject:        true,
	Conjunction:                true,
	NounSubjectComplement:      true,
	AdjectiveSubjectComplement: true,
	NounObjectComplement:       true,
	AdjectiveObjectComplement:  true,
}

var phrase = map[Role]bool{
	ToInfinitive: true,
	Gerund:       true,
}

var chunk = map[Role]bool{
	ChunkSubject:        true,
	ChunkAdverbModifier: true,
	ChunkNotDecided:     true,
}

// symbols of the primary roles. Subjects are not drawn.
var symbols = map[Role]rune{
	Verb:                       '◯',
	Object:                     '□',
	IndirectObject:             '□',
	DirectObject:               '□',
	PrepositionalObject:        '□',
	Preposition:                '▽',
	Conjunction:                '◇',
	NounSubjectComplement:      '[',
	AdjectiveSubjectComplement: '(',
	NounObjectComplement:       '[',
	AdjectiveObjectComplement:  '(',
}

func (r Role) IsPrimary() bool { return primary[r] }
func (r Role) IsPhrase() bool  { return phrase[r] }
func (r Role) IsChunk() bool   { return chunk[r] }

// Valid reports whether r is None or one of the known roles.
func (r Role) Valid() bool {
	return r == None || r.IsPrimary() || r.IsPhrase() || r.IsChunk()
}

// Symbol returns the diagram symbol of the role, if it has one.
func (r Role) Symbol() (rune, bool) {
	s, ok := symbols[r]
	return s, ok
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, o := range roles {
		if r == o {
			return true
		}
	}
	return false
}

// IsObjectComplement reports whether r is a noun or adjective object complement.
func (r Role) IsObjectComplement() bool {
	return r == NounObjectComplement || r == AdjectiveObjectComplement
}

// IsSubjectComplement reports whether r is a noun or adjective subject complement.
func (r Role) IsSubjectComplement() bool {
	return r == NounSubjectComplement || r == AdjectiveSubjectComplement
}

// UnmarshalJSON rejects unknown roles. Language model responses are decoded
// into Roles, this keeps free text out of the annotations.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == nil {
		*r = None
		return nil
	}

	v := Role(*s)
	if !v.Valid() {
		return fmt.Errorf("unknown role %q", *s)
	}

	*r = v
	return nil
}

// Verb attribute symbols of the tense/aspect/voice row
const (
	PresentTense      = '|'
	PastTense         = '>'
	PerfectAspect     = 'P'
	ProgressiveAspect = 'i'
	PassiveVoice      = '^'
)

// Filler symbols of the diagram rows
const (
	Blank       = ' '
	Underline   = '_'
	Dot         = '.'
	Question    = '∩'
	ChunkEnd    = ']'
	SubjectOpen = '['
	AdverbOpen  = '<'
	AdverbClose = '>'
)
