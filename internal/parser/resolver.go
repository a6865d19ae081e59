package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pikachuaaaa/RPGBot/internal/command"
)

// suggestionThreshold is the similarity a registered name must exceed to be
// offered as a suggestion.
const suggestionThreshold = 0.6

// resolve matches the longest run of leading tokens that names a command and
// returns it with the tokens after the name. With no match it returns nil
// and tokens unchanged.
func (p *Parser) resolve(tokens []string, candidates []entry) (*command.Command, []string) {
	for k := len(tokens) - 1; k >= 0; k-- {
		key := nameKey(strings.Join(tokens[:k+1], " "), p.caseSensitive)
		for _, e := range candidates {
			if e.key == key {
				return e.cmd, tokens[k+1:]
			}
		}
	}
	return nil, tokens
}

// suggest returns the registered name most similar to name, or "" when none
// scores above suggestionThreshold. Ties go to the earliest registration.
func (p *Parser) suggest(name string, candidates []entry) string {
	key := nameKey(name, p.caseSensitive)

	best := ""
	bestScore := 0.0
	for _, e := range candidates {
		if score := similarity(key, e.key); score > bestScore {
			best = e.cmd.Name
			bestScore = score
		}
	}

	if bestScore > suggestionThreshold {
		return best
	}
	return ""
}

// differ finds a minimal insert/delete script: without a timeout go-diff
// always runs the full bisection.
var differ = func() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return dmp
}()

// similarity is the indel ratio 2*LCS(a, b) / (len(a)+len(b)) over runes,
// which equals (la+lb-indel)/(la+lb) with substitutions costing two edits.
func similarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}

	common := 0
	for _, d := range differ.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(d.Text)
		}
	}
	return 2 * float64(common) / float64(total)
}
