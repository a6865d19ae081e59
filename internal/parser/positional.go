package parser

import "strings"

// formatPositionals folds comma-joined runs of tokens into single list
// literals, so "1 , 2 , 3" becomes "[1,2,3]". Tokens outside a comma run pass
// through unchanged.
func formatPositionals(tokens []string) []string {
	var (
		out  []string
		acc  strings.Builder
		open bool
	)

	emit := func() {
		acc.WriteByte(']')
		out = append(out, acc.String())
		acc.Reset()
		open = false
	}

	for i, tok := range tokens {
		last := i+1 == len(tokens)
		nextIsComma := !last && tokens[i+1] == comma

		switch {
		case nextIsComma:
			if !open {
				acc.WriteByte('[')
				open = true
			}
			acc.WriteString(tok)
		case open && tok == comma:
			// A trailing comma closes the list without adding an element.
			if last {
				emit()
				break
			}
			acc.WriteString(comma)
		case open:
			acc.WriteString(tok)
			emit()
		default:
			out = append(out, tok)
		}
	}

	return out
}
