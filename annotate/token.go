package annotate

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/sentence"
)

// Token is a sentence token decorated with the diagram annotations.
type Token struct {
	sentence.Token

	Role1 role.Role `json:"role1,omitempty"`

	// Role2 and Role3 are only set on clause connectors: the phrase type (or
	// the role the connector had before the repair passes) and the chunk
	// function.
	Role2 role.Role `json:"role2,omitempty"`
	Role3 role.Role `json:"role3,omitempty"`

	Level Level `json:"level"`

	// Combine are the links from this token to tokens on its right.
	Combine []Link `json:"combine,omitempty"`

	// Chunk is set on clause connectors classified as a chunk.
	Chunk *Chunk `json:"chunk,omitempty"`
}

// Link is a connection from a token to the token at Idx, drawn as an
// underline between both.
type Link struct {
	Idx   int       `json:"idx"`
	Role1 role.Role `json:"role1"`
}

// Level is the nesting level of a token, with 0.5 granularity. It is stored
// in halves: Level(3) is 1.5.
type Level int

const half Level = 1

// deeper levels from the language model are clamped
const maxDepth = 64

// LevelOf returns the integer level depth.
func LevelOf(depth int) Level {
	return Level(2 * depth)
}

// Depth returns the integer part of the level: the row of the token.
func (l Level) Depth() int {
	return int(l) / 2
}

// IsConnector reports whether the level is n.5, the level of the first token
// of a clause.
func (l Level) IsConnector() bool {
	return l%2 != 0
}

// Row returns the row where the links of the token are drawn. A connector
// links inside its clause, one row below its depth.
func (l Level) Row() int {
	return int(l+half) / 2
}

func (l Level) Float() float64 {
	return float64(l) / 2
}

func (l Level) String() string {
	return strconv.FormatFloat(l.Float(), 'f', -1, 64)
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Float())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	switch {
	case f == nil || *f < 0:
		*l = 0
	case *f > maxDepth:
		*l = LevelOf(maxDepth)
	default:
		*l = Level(math.Round(*f * 2))
	}
	return nil
}

// Chunk describes the phrase started by a clause connector.
type Chunk struct {
	Kind Kind `json:"kind,omitempty"`

	// Idx of the first and last token of the chunk
	Start int `json:"start"`
	End   int `json:"end"`
}

// HasRoles reports whether some token carries a primary role.
func HasRoles(tokens []Token) bool {
	for _, t := range tokens {
		if t.Role1 != role.None {
			return true
		}
	}
	return false
}
