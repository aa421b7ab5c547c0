package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps profanity to family-friendly alternatives. The
// narration service already runs with safety thresholds, but models
// still let mild profanity through; this softens it client-side for
// lower content ratings.
var replacements = map[string]string{
	"fuck":     "fudge",
	"shit":     "shoot",
	"damn":     "dang",
	"goddamn":  "gosh-dang",
	"hell":     "heck",
	"ass":      "butt",
	"asshole":  "jerk",
	"bitch":    "jerk",
	"bastard":  "scoundrel",
	"crap":     "crud",
	"piss":     "ticked",
	"bullshit": "baloney",
	"dumbass":  "dummy",
	"prick":    "jerk",
}

// ContentFilter softens profanity in narration text.
type ContentFilter struct {
	patterns map[string]*regexp.Regexp
}

// NewContentFilter compiles the word-boundary patterns up front.
func NewContentFilter() *ContentFilter {
	cf := &ContentFilter{
		patterns: make(map[string]*regexp.Regexp, len(replacements)),
	}
	for word := range replacements {
		cf.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return cf
}

// Filter replaces profanity with its softened alternative, preserving
// the case pattern of the original word.
func (cf *ContentFilter) Filter(text string) string {
	result := text
	for word, replacement := range replacements {
		result = cf.patterns[word].ReplaceAllStringFunc(result, func(match string) string {
			return matchCase(match, replacement)
		})
	}
	return result
}

// Contains reports whether the text holds any filterable word.
func (cf *ContentFilter) Contains(text string) bool {
	for _, pattern := range cf.patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// ShouldFilter reports whether a content rating calls for softening.
func ShouldFilter(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}

// matchCase applies the case pattern of the original word to the
// replacement. Mixed-case originals are matched rune by rune.
func matchCase(original, replacement string) string {
	if original == "" {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return replacement
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	originalRunes := []rune(original)
	replacementRunes := []rune(replacement)
	out := make([]rune, 0, len(replacementRunes))
	for i, r := range replacementRunes {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			out = append(out, unicode.ToUpper(r))
		} else {
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
