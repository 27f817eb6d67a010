package matcher

import "strings"

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "was": true,
	"my": true, "is": true, "it": true, "in": true, "on": true, "at": true,
	"of": true, "to": true, "an": true, "as": true, "be": true,
	"are": true, "this": true, "that": true, "have": true, "had": true,
	"his": true, "her": true, "its": true, "from": true, "after": true,
	"before": true, "today": true, "level": true, "levels": true,
	"reading": true, "measured": true, "measurement": true,
}

var synonyms = map[string]string{
	"sugar": "glucose",
	"bp":    "bloodpressure",
	"a1c":   "hba1c",
}

// Tokenize lowercases, strips everything outside [a-z0-9% ], splits on
// whitespace, drops single-character tokens and stop words, and maps known
// lay synonyms onto corpus vocabulary.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '%':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 1 || stopWords[f] {
			continue
		}
		if mapped, ok := synonyms[f]; ok {
			f = mapped
		}
		tokens = append(tokens, f)
	}
	return tokens
}
