package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Separator tokens.
const (
	colon = ":"
	comma = ","
)

func isSeparator(tok string) bool {
	return tok == colon || tok == comma
}

// Tokenize splits text into plain words, the separators ":" and ",", and
// packed spans. A packed span starts at an opening packing rune and runs to
// its matching closing rune, delimiters included; nothing inside it is split.
func (p *Parser) Tokenize(text string) ([]string, error) {
	var tokens []string
	start := -1

	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, text[start:end])
			start = -1
		}
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case unicode.IsSpace(r):
			flush(i)

		case r == ':' || r == ',':
			flush(i)
			tokens = append(tokens, text[i:i+size])

		default:
			closer, ok := p.packing[r]
			if !ok {
				if start < 0 {
					start = i
				}
				break
			}

			if start >= 0 {
				return nil, &SyntaxError{
					Msg:   fmt.Sprintf("unexpected %q", r),
					Input: text,
					Pos:   i,
				}
			}

			end, err := scanPacked(text, i, r, closer)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, text[i:end])
			i = end
			continue
		}

		i += size
	}

	flush(len(text))
	return tokens, nil
}

// scanPacked returns the end offset (exclusive) of the packed span opening at
// text[at]. The closing rune is checked first, so self-pairing delimiters
// such as quotes close on their first repeat.
func scanPacked(text string, at int, open, closer rune) (int, error) {
	depth := 1
	j := at + utf8.RuneLen(open)

	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		j += size

		if r == closer {
			depth--
		} else if r == open {
			depth++
		}
		if depth == 0 {
			return j, nil
		}
	}

	return 0, &SyntaxError{
		Msg:   fmt.Sprintf("expected %q but it wasn't found", closer),
		Input: text,
		Pos:   at,
	}
}

// leadingToken returns the first token of text without tokenizing the rest,
// so that messages for other bots are never syntax-checked.
func (p *Parser) leadingToken(text string) string {
	start := -1
	for i, r := range text {
		_, opens := p.packing[r]
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				return text[start:i]
			}
		case r == ':' || r == ',' || opens:
			if start >= 0 {
				return text[start:i]
			}
			return ""
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start < 0 {
		return ""
	}
	return text[start:]
}
