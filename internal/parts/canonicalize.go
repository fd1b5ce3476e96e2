package parts

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchKind records how a raw phrase was resolved to an instrument.
type MatchKind int

const (
	// MatchNone: empty or sentinel input, nothing to resolve.
	MatchNone MatchKind = iota
	// MatchExact: resolved via the ordered pattern table.
	MatchExact
	// MatchFuzzy: resolved via alias/substring match against the registry.
	MatchFuzzy
	// MatchFallback: unrecognized phrase kept as a cleaned raw string.
	MatchFallback
)

var titleCaser = cases.Title(language.English)

var nonLabelChars = regexp.MustCompile(`[^\pL\pN .&'/-]+`)

var multiSpace = regexp.MustCompile(`\s+`)

// Canonicalize resolves a raw instrument phrase to a canonical instrument.
// It is a total function: it never fails and never returns an empty name for
// non-empty input. Empty or sentinel input yields "Unknown" with MatchNone.
//
// Resolution order: ordered pattern table, then alias/substring match against
// the registry, then a cleaned-raw fallback with transposition C and section
// Other.
func Canonicalize(raw string) (canonicalInstrument, MatchKind) {
	phrase := strings.TrimSpace(raw)
	if IsForbiddenLabel(phrase) {
		return canonicalInstrument{Name: "Unknown", Transposition: TranspositionC, Section: SectionOther}, MatchNone
	}

	for _, p := range instrumentPatterns {
		if p.re.MatchString(phrase) {
			return p.result, MatchExact
		}
	}

	if ci, ok := fuzzyLookup(phrase); ok {
		return ci, MatchFuzzy
	}

	return canonicalInstrument{
		Name:          cleanRawLabel(phrase),
		Transposition: TranspositionC,
		Section:       SectionOther,
	}, MatchFallback
}

// fuzzyLookup matches a phrase against the alias table and then by substring
// containment against registry names. Registry order decides ties.
func fuzzyLookup(phrase string) (canonicalInstrument, bool) {
	key := foldKey(phrase)
	if key == "" {
		return canonicalInstrument{}, false
	}

	if name, ok := instrumentAliases[key]; ok {
		return registryByName[foldKey(name)], true
	}

	for _, ci := range instrumentRegistry {
		nameKey := foldKey(ci.Name)
		if strings.Contains(key, nameKey) {
			return ci, true
		}
		// Partial phrase matching the head of a registry name needs enough
		// signal to avoid resolving line noise.
		if len(key) >= 4 && strings.Contains(nameKey, key) {
			return ci, true
		}
	}

	return canonicalInstrument{}, false
}

// cleanRawLabel produces a presentable label from an unrecognized phrase.
func cleanRawLabel(phrase string) string {
	s := nonLabelChars.ReplaceAllString(phrase, " ")
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return "Unknown"
	}
	return titleCaser.String(strings.ToLower(s))
}
