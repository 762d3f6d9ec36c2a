package notepicker

import (
	"sort"
	"strings"
	"unicode"

	"github.com/llehouerou/notedeck/internal/notes"
)

// Match is a ranked index into the results the matcher was built from.
type Match struct {
	Index int
	Score float64
}

// Matcher ranks note search results against a query using trigrams,
// with multi-word AND semantics.
type Matcher struct {
	normalized []string
	trigrams   []map[string]struct{}
}

// NewMatcher indexes the title and path of every result.
func NewMatcher(results []notes.SearchResult) *Matcher {
	m := &Matcher{
		normalized: make([]string, len(results)),
		trigrams:   make([]map[string]struct{}, len(results)),
	}
	for i, r := range results {
		text := normalize(r.Title + " " + r.PathTitle)
		m.normalized[i] = text
		m.trigrams[i] = generateTrigrams(text)
	}
	return m
}

// Rank orders every indexed result for query. Results matching all query
// words come first, best score first; the rest keep their original order
// after them, since the server matched them on content.
func (m *Matcher) Rank(query string) []Match {
	words := strings.Fields(normalize(query))

	matched := make([]Match, 0, len(m.normalized))
	var rest []Match
	for i := range m.normalized {
		score := 0.0
		if len(words) > 0 {
			score = m.score(i, words)
		}
		if score > 0 {
			matched = append(matched, Match{Index: i, Score: score})
		} else {
			rest = append(rest, Match{Index: i})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})
	return append(matched, rest...)
}

// score returns 0 unless every word matches.
func (m *Matcher) score(idx int, words []string) float64 {
	text := m.normalized[idx]
	itemTris := m.trigrams[idx]
	total := 0.0

	for _, word := range words {
		// Trigrams carry no signal for 1-2 rune words.
		if len([]rune(word)) <= 2 {
			if !strings.Contains(text, word) {
				return 0
			}
			total += 1.0
			continue
		}

		coverage := trigramCoverage(generateTrigrams(word), itemTris)
		if coverage < 0.4 {
			return 0
		}
		if strings.Contains(text, word) {
			coverage += 0.5
		}
		total += coverage
	}

	return total / float64(len(words))
}

func normalize(s string) string {
	return removeMarks(strings.ToLower(s))
}

// generateTrigrams pads s with two spaces on each side so prefixes and
// suffixes get their own trigrams. All-space trigrams are skipped.
func generateTrigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	tris := make(map[string]struct{})
	runes := []rune("  " + s + "  ")
	for i := 0; i <= len(runes)-3; i++ {
		tri := string(runes[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}
	return tris
}

// trigramCoverage returns |query ∩ item| / |query|.
func trigramCoverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	n := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			n++
		}
	}
	return float64(n) / float64(len(query))
}

// removeMarks drops combining marks, so decomposed "café" matches "cafe".
func removeMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
