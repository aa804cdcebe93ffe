package analytics

import (
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// AspectCategory is a named product aspect and the keywords that signal it.
type AspectCategory struct {
	Name     string
	Keywords []string
}

// AppAspects are the aspect categories tracked for app reviews, in report
// order.
var AppAspects = []AspectCategory{
	{"Performance", []string{"performance", "speed", "fast", "slow", "lag", "crash", "loading", "freeze", "hang", "responsive", "optimization"}},
	{"UI/Interface", []string{"interface", "ui", "design", "layout", "look", "appearance", "theme", "color", "button", "screen", "display"}},
	{"Usability", []string{"usability", "user-friendly", "intuitive", "easy", "difficult", "confusing", "complicated", "simple", "clear", "straightforward"}},
	{"Features", []string{"feature", "functionality", "option", "capability", "tool", "function", "ability", "control", "setting"}},
	{"Reliability", []string{"reliable", "stability", "stable", "consistent", "dependable", "trustworthy", "solid", "robust", "glitch", "bug", "error"}},
	{"Security", []string{"security", "secure", "privacy", "protection", "safe", "confidential", "private", "login", "password", "authentication"}},
	{"Customer Service", []string{"support", "service", "help", "assistance", "contact", "response", "customer service", "feedback", "reply", "answer"}},
	{"Update", []string{"update", "upgrade", "version", "latest", "new", "improved", "improvement", "fix", "fixed", "recent", "change"}},
	{"Transaction", []string{"transaction", "payment", "purchase", "buy", "money", "cost", "price", "fee", "charge", "subscription", "pay"}},
}

// AspectSentiment counts reviews mentioning an aspect, by label.
type AspectSentiment struct {
	Aspect   string `json:"aspect"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Total    int    `json:"total"`
}

func (a *AspectSentiment) add(l sentiment.Label) {
	switch l {
	case sentiment.Positive:
		a.Positive++
	case sentiment.Neutral:
		a.Neutral++
	case sentiment.Negative:
		a.Negative++
	}
	a.Total++
}

// CategorizeAspects returns the names of every aspect with a keyword that
// occurs as a substring of the lowercased text. Substring matching is loose:
// "ui" also matches inside "quick".
func CategorizeAspects(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, a := range AppAspects {
		for _, kw := range a.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, a.Name)
				break
			}
		}
	}
	return out
}

// Aspects tallies review labels per aspect. Every category is present in the
// result, in AppAspects order, even when no review mentions it.
func Aspects(docs []ingest.Document) []AspectSentiment {
	out := make([]AspectSentiment, len(AppAspects))
	index := make(map[string]int, len(AppAspects))
	for i, a := range AppAspects {
		out[i].Aspect = a.Name
		index[a.Name] = i
	}
	for _, d := range docs {
		l := d.Label()
		for _, name := range CategorizeAspects(d.RawText) {
			out[index[name]].add(l)
		}
	}
	return out
}
