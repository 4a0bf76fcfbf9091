package textanalyzer

// StopWords is an immutable set of words excluded from ranking. Construct it
// with NewStopWords or DefaultStopWords and inject it into an Analyzer;
// membership tests expect already-lowercased tokens.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a stop-word set from the given words.
func NewStopWords(words ...string) StopWords {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return StopWords{words: m}
}

// Contains reports whether the word is in the set. Matching is exact; callers
// lowercase tokens before lookup.
func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s StopWords) Len() int { return len(s.words) }

// With returns a new set containing this set's words plus the extras.
// The receiver is not modified.
func (s StopWords) With(extra ...string) StopWords {
	m := make(map[string]struct{}, len(s.words)+len(extra))
	for w := range s.words {
		m[w] = struct{}{}
	}
	for _, w := range extra {
		m[w] = struct{}{}
	}
	return StopWords{words: m}
}

// DefaultStopWords returns the built-in set: common English function words,
// archaic forms frequent in older texts, high-frequency reporting verbs, and
// Project Gutenberg boilerplate terms.
func DefaultStopWords() StopWords {
	return NewStopWords(
		"the", "and", "to", "of", "a", "in", "is", "it", "for", "on", "with",
		"by", "at", "this", "but", "or", "an", "be", "from", "as", "that", "are",
		"was", "were", "will", "would", "should", "could", "can", "may", "might", "must",
		"project", "gutenberg", "gutenberg™", "ebook", "edition", "online", "http", "www",
		"i", "you", "he", "she", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "mine", "yours", "ours", "theirs",
		"these", "those", "which", "what", "who", "whom", "whose", "when", "where", "why", "how",
		"am", "been", "being",
		"have", "has", "had", "having",
		"do", "does", "did", "doing",
		"if", "than", "then", "so", "because", "although", "though", "while", "before", "after",
		"about", "into", "through", "over", "under", "again", "further", "up", "down", "out",
		"very", "more", "most", "some", "any", "each", "few", "many", "such",
		"only", "just", "now", "too", "also", "even", "still", "yet",
		"thou", "thee", "thy", "thine", "hath", "doth", "shalt", "art",
		"said", "say", "says", "shall", "come", "came", "go", "went", "know", "knew",
		"look", "looked", "see", "saw", "felt", "thought", "told", "made", "make", "found", "asked", "replied",
	)
}
