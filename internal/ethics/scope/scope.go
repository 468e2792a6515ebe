// Package scope decides whether a message falls outside the wellbeing domain.
package scope

import "strings"

// offTopic lists phrases that mark a request as unrelated to wellbeing.
var offTopic = []string{
	"math", "programming", "history", "capital of", "movie",
	"football", "phone", "shopping", "flight", "recipe",
	"disease", "joke", "horoscope", "translate", "news",
}

// meta lists questions about the assistant itself. They are always in scope.
var meta = []string{
	"who are you",
	"what are you",
	"what can you do",
	"are you a bot",
	"are you an ai",
	"are you human",
	"are you real",
	"your name",
	"reflectai",
	"how do you work",
}

// Filter is a lexical scope filter over the current turn only.
type Filter struct {
	offTopic []string
	meta     []string
}

// NewFilter returns a Filter with the built-in phrase lists.
func NewFilter() *Filter {
	return &Filter{offTopic: offTopic, meta: meta}
}

// IsOutOfScope reports whether text mentions an off-topic phrase and is not a
// question about the assistant. Matching is case-insensitive substring search,
// so "my phone addiction makes me anxious" is out of scope too.
func (f *Filter) IsOutOfScope(text string) bool {
	lower := strings.ToLower(text)
	if containsAny(lower, f.meta) {
		return false
	}
	return containsAny(lower, f.offTopic)
}

// MatchedTopic returns the first off-topic phrase found in text, or "".
func (f *Filter) MatchedTopic(text string) string {
	lower := strings.ToLower(text)
	for _, p := range f.offTopic {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
