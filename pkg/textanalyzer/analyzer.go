package textanalyzer

import (
	"regexp"
	"sort"
	"strings"
)

// Version returns the current version of the package.
func Version() string { return "0.1.0" }

// DefaultTopWords is the number of ranked words an Analyzer keeps unless
// configured otherwise.
const DefaultTopWords = 10

// WordCount pairs a word with its occurrence count in an analyzed document.
type WordCount struct {
	Word      string
	Frequency int
}

// punctuation is the fixed, locale-independent set of characters deleted
// before tokenization. Matches ASCII punctuation; characters outside this set
// (e.g. typographic quotes) pass through untouched.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// (?s) allows dot to match newlines so tags spanning lines are removed too.
var reTag = regexp.MustCompile(`(?s)<.*?>`)

// StripMarkup removes every tag-like span <...> (non-greedy) from the input.
// No HTML entity decoding is performed, and malformed or unbalanced angle
// brackets may remove unintended spans; that is accepted behavior.
func StripMarkup(text string) string {
	return reTag.ReplaceAllString(text, "")
}

// Analyzer ranks the most frequent words of a document, ignoring stop words.
// It is stateless across calls and safe to reuse.
type Analyzer struct {
	stop  StopWords
	limit int
}

// New creates an Analyzer with the given stop-word set and result limit.
// A nil stop set filters nothing; a non-positive limit falls back to
// DefaultTopWords.
func New(stop StopWords, limit int) *Analyzer {
	if limit <= 0 {
		limit = DefaultTopWords
	}
	return &Analyzer{stop: stop, limit: limit}
}

// RankWords normalizes the text (punctuation deleted, lowercased), splits it
// on whitespace runs, drops stop words, counts the survivors and returns up
// to the configured limit of them, most frequent first. Ties are broken by
// first occurrence in the filtered token stream, so the output is
// deterministic for a given input. An input with no surviving tokens yields
// a nil slice, never an error.
func (a *Analyzer) RankWords(text string) []WordCount {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.ToLower(cleaned)

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(cleaned) {
		if a.stop.Contains(tok) {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}

	ranked := make([]WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, WordCount{Word: w, Frequency: counts[w]})
	}
	// Stable sort over first-occurrence order keeps tied words in the order
	// they first appeared.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})

	if len(ranked) > a.limit {
		ranked = ranked[:a.limit]
	}
	return ranked
}
