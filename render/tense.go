package render

import (
	"strings"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

const (
	AspectPerfect     = "perfect"
	AspectProgressive = "progressive"
	VoicePassive      = "passive"
)

// VerbChain is a run of auxiliaries and main verb of one clause, with its
// tense, aspect and voice.
type VerbChain struct {
	Verbs    []string `json:"verb_chain"`
	MainVerb string   `json:"main_verb"`
	Aspects  []string `json:"aspect,omitempty"`
	Voice    string   `json:"voice,omitempty"`

	// Symbols of the tense row, by token offset
	Symbols map[int]string `json:"symbol_map"`
}

func (vc *VerbChain) mark(idx int, s rune) {
	vc.Symbols[idx] = string(s)
}

func (vc *VerbChain) addAspect(a string) {
	for _, x := range vc.Aspects {
		if x == a {
			return
		}
	}
	vc.Aspects = append(vc.Aspects, a)
}

// Chains splits the verbs of the sentence in chains and computes their
// attributes. A chain ends at a coordinating conjunction and where the level
// changes.
func Chains(tokens []annotate.Token, lx *lexicon.Lexicon) []VerbChain {
	var groups [][]annotate.Token
	var current []annotate.Token

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for i, t := range tokens {
		if i > 0 && t.Level != tokens[i-1].Level {
			flush()
		}

		if t.Dep == "cc" && (t.Pos == "CCONJ" || t.Pos == "CONJ") {
			flush()
		}

		if isVerbal(t) {
			current = append(current, t)
		}
	}
	flush()

	chains := make([]VerbChain, 0, len(groups))
	for _, g := range groups {
		chains = append(chains, chainAttributes(g, lx))
	}

	return chains
}

func chainAttributes(chain []annotate.Token, lx *lexicon.Lexicon) VerbChain {
	vc := VerbChain{
		MainVerb: chain[len(chain)-1].Text,
		Symbols:  map[int]string{},
	}

	for _, t := range chain {
		vc.Verbs = append(vc.Verbs, t.Text)
	}

	// leading modal
	first := chain[0]
	if first.Pos == "AUX" && first.Dep == "aux" && first.Tag == "MD" {
		switch {
		case lx.Is(lexicon.ModalPresent, first.Lemma):
			vc.mark(first.Idx, role.PresentTense)
		case lx.Is(lexicon.ModalPast, first.Lemma):
			vc.mark(first.Idx, role.PastTense)
		}
	}

	// auxiliaries
	for _, t := range chain {
		if t.Pos != "AUX" || (t.Dep != "aux" && t.Dep != "auxpass") {
			break
		}

		markFiniteTense(&vc, t)

		text := strings.ToLower(t.Text)
		switch {
		case text == "been" && t.Tag == "VBN":
			vc.mark(t.Idx, role.PerfectAspect)
			vc.addAspect(AspectPerfect)
		case text == "being" && t.Tag == "VBG":
			vc.mark(t.Idx, role.ProgressiveAspect)
			vc.addAspect(AspectProgressive)
		}
	}

	// main verb
	last := chain[len(chain)-1]
	if !annotate.IsLevelTrigger(last.Dep) && last.Dep != "root" {
		return vc
	}

	markFiniteTense(&vc, last)

	switch last.Tag {
	case "VBN":
		for i := len(chain) - 2; i >= 0; i-- {
			prev := chain[i]
			if prev.Pos != "AUX" {
				continue
			}

			lemma := strings.ToLower(prev.Lemma)
			if prev.Dep == "aux" && lemma == "have" {
				vc.mark(last.Idx, role.PerfectAspect)
				vc.addAspect(AspectPerfect)
				break
			}

			if prev.Dep == "auxpass" && lemma == "be" {
				vc.mark(last.Idx, role.PassiveVoice)
				vc.Voice = VoicePassive
				break
			}
		}

	case "VBG":
		vc.mark(last.Idx, role.ProgressiveAspect)
		vc.addAspect(AspectProgressive)
	}

	return vc
}

// markFiniteTense marks present or past on a finite verb.
func markFiniteTense(vc *VerbChain, t annotate.Token) {
	if t.Morph.VerbForm != "Fin" {
		return
	}

	switch {
	case t.Tag == "VBP" || t.Tag == "VBZ" || t.Morph.Tense == "Pres":
		vc.mark(t.Idx, role.PresentTense)
	case t.Tag == "VBD" || t.Morph.Tense == "Past":
		vc.mark(t.Idx, role.PastTense)
	}
}

// tenseRow draws the symbols of all chains in a row of width runes.
func tenseRow(width int, chains []VerbChain) string {
	row := []rune(strings.Repeat(string(role.Blank), width))
	for _, vc := range chains {
		for idx, s := range vc.Symbols {
			if idx < 0 || idx >= width {
				continue
			}
			row[idx] = []rune(s)[0]
		}
	}
	return string(row)
}
