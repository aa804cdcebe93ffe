package ingest

import (
	"strings"
	"unicode/utf8"
)

type suffixRule struct {
	suffix      string
	replacement string
}

// Checked in order after the inflection rules.
var substitutions = []suffixRule{
	{"ational", "ate"},
	{"tional", "tion"},
	{"alize", "al"},
	{"ousness", "ous"},
	{"iveness", "ive"},
	{"fulness", "ful"},
	{"ement", ""},
}

var derivational = []string{
	"ment", "ness", "able", "ible", "ship", "less",
	"ize", "ise", "ify", "ful", "ous", "ity",
}

// Stem reduces a word with a small ordered rule set. This is a light
// suffix stripper, not a Porter stemmer: the first matching rule wins and
// words shorter than three characters are returned unchanged.
func Stem(word string) string {
	n := utf8.RuneCountInString(word)
	if n < 3 {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies") && n > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "es") && !strings.HasSuffix(word, "sses") &&
		!strings.HasSuffix(word, "uses") && n > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && n > 3 && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	case strings.HasSuffix(word, "ed") && n > 4:
		return degeminate(word[:len(word)-2])
	case strings.HasSuffix(word, "ing") && n > 5:
		return degeminate(word[:len(word)-3])
	}

	for _, r := range substitutions {
		if strings.HasSuffix(word, r.suffix) {
			return word[:len(word)-len(r.suffix)] + r.replacement
		}
	}

	for _, suffix := range derivational {
		if strings.HasSuffix(word, suffix) && n > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}

	return word
}

// degeminate drops one letter of a trailing double ("stopp" -> "stop").
func degeminate(stem string) string {
	runes := []rune(stem)
	if len(runes) >= 2 && runes[len(runes)-1] == runes[len(runes)-2] {
		return string(runes[:len(runes)-1])
	}
	return stem
}
