package germinal

import (
	"github.com/dlclark/regexp2"
)

// URL pattern building blocks
const (
	urlScheme       = `[a-zA-Z]+`
	urlStraightText = `[^ \t\n\r()\[\]"<>]*[^.,;:!?' \t\n\r()\[\]"<>]+`
	urlQuotedText   = `"[^"\n\r]+"`
	urlParenText    = `\([^()\n\r]+\)`
	urlSquareText   = `\[[^\n\r\[\]]+\]`
	urlAngleText    = `<[^\n\r<>]+>`
)

// URLPattern is the expression used to detect URLs in terminal text.
// The straight-text alternative never ends on punctuation, so a URL at the
// end of a sentence does not swallow the full stop.
const URLPattern = urlScheme + `://(` +
	urlQuotedText + `|` +
	urlParenText + `|` +
	urlSquareText + `|` +
	urlAngleText + `|` +
	urlStraightText + `)+`

var urlRegexp = regexp2.MustCompile(URLPattern, regexp2.IgnoreCase)

// URLMatch is a URL found in a line of text.
// Start and End are rune offsets (terminal columns), End exclusive.
type URLMatch struct {
	Text  string
	Start int
	End   int
}

// Contains reports whether the column lies inside the match
func (m URLMatch) Contains(col int) bool {
	return col >= m.Start && col < m.End
}

// MatchesURL reports whether s contains a URL anywhere
func MatchesURL(s string) bool {
	ok, err := urlRegexp.MatchString(s)
	return err == nil && ok
}

// FindURLs returns every URL in line, left to right
func FindURLs(line string) []URLMatch {
	var matches []URLMatch
	m, err := urlRegexp.FindStringMatch(line)
	for err == nil && m != nil {
		if m.Length > 0 {
			matches = append(matches, URLMatch{
				Text:  m.String(),
				Start: m.Index,
				End:   m.Index + m.Length,
			})
		}
		m, err = urlRegexp.FindNextMatch(m)
	}
	return matches
}

// URLAt returns the URL covering column col of line, if any
func URLAt(line string, col int) (string, bool) {
	if col < 0 {
		return "", false
	}
	for _, m := range FindURLs(line) {
		if m.Contains(col) {
			return m.Text, true
		}
		if m.Start > col {
			break
		}
	}
	return "", false
}
