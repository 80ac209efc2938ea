package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is a contiguous run of display text, tagged when it is a query hit.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Highlight splits text on every case-insensitive occurrence of query.
//
// The query is trimmed first. Matches are found left to right and never
// overlap. Segment texts are slices of text, so casing and every non-matching
// character are kept exactly; concatenating them gives back text.
// An empty query yields a single plain segment; an empty text yields none.
func Highlight(text, query string) []Segment {
	if text == "" {
		return []Segment{}
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	plainStart := 0
	for i := 0; i < len(text); {
		if n, ok := hasPrefixFold(text[i:], q); ok {
			if i > plainStart {
				segments = append(segments, Segment{Text: text[plainStart:i]})
			}
			segments = append(segments, Segment{Text: text[i : i+n], Matched: true})
			i += n
			plainStart = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if plainStart < len(text) {
		segments = append(segments, Segment{Text: text[plainStart:]})
	}
	return segments
}

// hasPrefixFold reports whether s starts with prefix once both are
// lowercased rune by rune, and how many bytes of s the match covers.
func hasPrefixFold(s, prefix string) (int, bool) {
	consumed := 0
	for prefix != "" {
		if s == "" {
			return 0, false
		}
		pr, psize := utf8.DecodeRuneInString(prefix)
		sr, ssize := utf8.DecodeRuneInString(s)
		if !equalFoldRune(sr, pr) {
			return 0, false
		}
		prefix = prefix[psize:]
		s = s[ssize:]
		consumed += ssize
	}
	return consumed, true
}

// equalFoldRune compares runes the way strings.ToLower does in Filter, so
// every Filter hit gets a highlighted segment and nothing else does.
func equalFoldRune(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}
