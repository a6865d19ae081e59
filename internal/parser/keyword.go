package parser

import "strings"

// KeywordArg is a name:value argument.
type KeywordArg struct {
	Name  string
	Value string
}

func (k KeywordArg) String() string {
	return k.Name + colon + k.Value
}

// splitKeywordArgs pulls the trailing run of keyword arguments off tokens.
//
// Scanning right to left, every ":" makes the token before it a keyword name
// and the tokens after it, up to the name of the keyword found previously, its
// value. Keyword arguments are returned rightmost first, followed by the
// tokens left in front of them. A ":" without a usable name ends the scan.
func splitKeywordArgs(tokens []string) ([]KeywordArg, []string) {
	var keywords []KeywordArg
	end := len(tokens)

	for i := end - 1; i >= 0; i-- {
		if tokens[i] != colon {
			continue
		}
		if i == 0 || isSeparator(tokens[i-1]) {
			break
		}

		keywords = append(keywords, KeywordArg{
			Name:  tokens[i-1],
			Value: joinValue(tokens[i+1 : end]),
		})
		end = i - 1
		i--
	}

	return keywords, tokens[:end]
}

// joinValue folds a keyword value span the same way positional arguments are
// folded. Spans that fold into several pieces are joined with spaces.
func joinValue(span []string) string {
	return strings.Join(formatPositionals(span), " ")
}

// textualOrder returns keywords in the order they appeared in the message.
func textualOrder(keywords []KeywordArg) []KeywordArg {
	out := make([]KeywordArg, len(keywords))
	for i, kw := range keywords {
		out[len(keywords)-1-i] = kw
	}
	return out
}
