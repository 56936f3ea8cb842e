package query

import "strings"

// Query is the parsed form of a raw search string. It is immutable once
// built; callers recompute it per input rather than mutating it.
type Query struct {
	// ExactPhrases holds quoted substrings that must appear verbatim
	// (case-insensitive) in the searched text, in input order.
	ExactPhrases []string
	// Exclude holds terms prefixed with '-' in the input; any text
	// containing one of them is rejected.
	Exclude []string
	// OrGroups holds groups of terms joined by the OR keyword; a match on
	// any one term satisfies its group.
	OrGroups [][]string
	// Required holds the remaining bare terms; every one must match as a
	// normalized prefix of some word.
	Required []string
}

// IsEmpty reports whether the query places no constraints at all.
func (q Query) IsEmpty() bool {
	return len(q.ExactPhrases) == 0 && len(q.Exclude) == 0 &&
		len(q.OrGroups) == 0 && len(q.Required) == 0
}

// Parse tokenizes a raw query string into a Query. Parsing never fails:
// malformed input degrades to a best-effort interpretation, and empty or
// all-whitespace input yields a Query that matches everything.
//
// Rules, in precedence order:
//   - "..."  exact phrase (an unterminated quote captures the rest of the string)
//   - -word  excluded term
//   - OR     (case-sensitive) joins the adjacent bare words into one group
//   - word   required term
func Parse(raw string) Query {
	var q Query

	// First pass: lift out quoted phrases so quotes never interfere with
	// word tokenization.
	var bare strings.Builder
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '"' {
			bare.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(raw[i+1:], '"')
		if end < 0 {
			// Lenient: treat the remainder as the phrase.
			phrase := strings.TrimSpace(raw[i+1:])
			if phrase != "" {
				q.ExactPhrases = append(q.ExactPhrases, phrase)
			}
			break
		}
		phrase := strings.TrimSpace(raw[i+1 : i+1+end])
		if phrase != "" {
			q.ExactPhrases = append(q.ExactPhrases, phrase)
		}
		bare.WriteByte(' ')
		i += end + 2
	}

	tokens := strings.Fields(bare.String())
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case strings.HasPrefix(tok, "-"):
			term := strings.TrimPrefix(tok, "-")
			if term != "" {
				q.Exclude = append(q.Exclude, term)
			}
		case tok == "OR":
			// A dangling OR with no bare word on either side is noise.
			continue
		case i+1 < len(tokens) && tokens[i+1] == "OR":
			group := []string{tok}
			// Consume the whole A OR B OR C chain.
			for i+1 < len(tokens) && tokens[i+1] == "OR" {
				i += 2
				if i < len(tokens) && tokens[i] != "OR" && !strings.HasPrefix(tokens[i], "-") {
					group = append(group, tokens[i])
				} else {
					i-- // the OR had no right-hand operand
					break
				}
			}
			if len(group) > 1 {
				q.OrGroups = append(q.OrGroups, group)
			} else {
				q.Required = append(q.Required, group[0])
			}
		default:
			q.Required = append(q.Required, tok)
		}
	}

	return q
}
