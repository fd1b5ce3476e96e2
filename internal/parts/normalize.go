package parts

import (
	"regexp"
	"strings"
)

// Chair and key phrasing patterns. Chair is inferred independently of the
// instrument so "Clarinet in Bb II" and "2nd Bb Clarinet" land on the same
// canonical part.
var (
	chairPrefixWord  = regexp.MustCompile(`(?i)^(1st|first|2nd|second|3rd|third|4th|fourth)\b[\s.:-]*`)
	chairPrefixNum   = regexp.MustCompile(`^([1-4])(?:st|nd|rd|th)?[\s.:-]+`)
	chairTrailRoman  = regexp.MustCompile(`(?i)[\s.:-]+(i{1,3}|iv)\.?$`)
	chairTrailNum    = regexp.MustCompile(`[\s.:-]+([1-4])(?:st|nd|rd|th)?\.?$`)
	chairSoloWord    = regexp.MustCompile(`(?i)\bsolo\b`)
	chairAuxWord     = regexp.MustCompile(`(?i)\baux(?:iliary)?\b`)
	keySuffixPhrase  = regexp.MustCompile(`(?i)^(.*?)\s+in\s+(b\s*(?:♭|b|flat)|e\s*(?:♭|b|flat)|[a-g])\b\.?(.*)$`)
	scoreWordPattern = regexp.MustCompile(`(?i)\bscore\b|\bconductor\b|\bpartitur\b`)
)

var romanChairs = map[string]Chair{
	"i": Chair1st, "ii": Chair2nd, "iii": Chair3rd, "iv": Chair4th,
}

var wordChairs = map[string]Chair{
	"1st": Chair1st, "first": Chair1st, "1": Chair1st,
	"2nd": Chair2nd, "second": Chair2nd, "2": Chair2nd,
	"3rd": Chair3rd, "third": Chair3rd, "3": Chair3rd,
	"4th": Chair4th, "fourth": Chair4th, "4": Chair4th,
}

// NormalizeLabel resolves a raw header phrase to a fully normalized
// instrument: chair, transposition, section, part type, and a display name
// that includes the chair ("2nd Bb Clarinet").
//
// Sentinel input ("null", "n/a", empty, ...) produces no label: upstream
// extraction emits these as explicit absence signals, and treating them as
// real values would corrupt generated titles and filenames downstream.
func NormalizeLabel(raw string) (NormalisedInstrument, MatchKind) {
	phrase := strings.TrimSpace(raw)
	if IsForbiddenLabel(phrase) {
		return NormalisedInstrument{
			Instrument:    "Unknown",
			Transposition: TranspositionC,
			Section:       SectionOther,
			PartType:      PartTypePart,
		}, MatchNone
	}

	if pt := inferPartType(phrase); pt != PartTypePart {
		return NormalisedInstrument{
			Instrument:    scoreDisplayName(pt),
			Transposition: TranspositionC,
			Section:       SectionScore,
			PartType:      pt,
		}, MatchExact
	}

	chair, remainder := extractChair(phrase)
	remainder = reorderKeyPhrase(remainder)

	ci, kind := Canonicalize(remainder)

	display := ci.Name
	switch chair {
	case ChairNone:
	default:
		display = string(chair) + " " + ci.Name
	}

	return NormalisedInstrument{
		Instrument:    display,
		Chair:         chair,
		Transposition: ci.Transposition,
		Section:       ci.Section,
		PartType:      PartTypePart,
	}, kind
}

// extractChair pulls a chair designation off the phrase and returns the
// remaining instrument text. Ordinal prefixes win over trailing numerals when
// both appear.
func extractChair(phrase string) (Chair, string) {
	if m := chairPrefixWord.FindStringSubmatch(phrase); m != nil {
		return wordChairs[strings.ToLower(m[1])], strings.TrimSpace(phrase[len(m[0]):])
	}
	if m := chairPrefixNum.FindStringSubmatch(phrase); m != nil {
		return wordChairs[m[1]], strings.TrimSpace(phrase[len(m[0]):])
	}
	if m := chairTrailRoman.FindStringSubmatch(phrase); m != nil {
		return romanChairs[strings.ToLower(m[1])], strings.TrimSpace(phrase[:len(phrase)-len(m[0])])
	}
	if m := chairTrailNum.FindStringSubmatch(phrase); m != nil {
		return wordChairs[m[1]], strings.TrimSpace(phrase[:len(phrase)-len(m[0])])
	}
	if chairSoloWord.MatchString(phrase) {
		return ChairSolo, strings.TrimSpace(chairSoloWord.ReplaceAllString(phrase, " "))
	}
	if chairAuxWord.MatchString(phrase) {
		return ChairAux, strings.TrimSpace(chairAuxWord.ReplaceAllString(phrase, " "))
	}
	return ChairNone, phrase
}

// reorderKeyPhrase rewrites "Clarinet in Bb" style phrasing to the canonical
// "Bb Clarinet" order so the pattern table sees one shape.
func reorderKeyPhrase(phrase string) string {
	m := keySuffixPhrase.FindStringSubmatch(phrase)
	if m == nil {
		return phrase
	}
	key := normalizeKeyToken(m[2])
	if key == "" {
		return phrase
	}
	rest := strings.TrimSpace(m[1] + " " + strings.TrimSpace(m[3]))
	return strings.TrimSpace(key + " " + rest)
}

// normalizeKeyToken maps a written key ("Bb", "b flat", "E♭", "f") to its
// canonical spelling.
func normalizeKeyToken(tok string) string {
	k := foldKey(tok)
	switch k {
	case "bb", "bflat", "b":
		return "Bb"
	case "eb", "eflat", "e":
		return "Eb"
	case "c":
		return "C"
	case "f":
		return "F"
	case "g":
		return "G"
	case "d":
		return "D"
	case "a":
		return "A"
	}
	return ""
}

// inferPartType classifies score-related headers. Anything else is a PART.
func inferPartType(phrase string) PartType {
	if !scoreWordPattern.MatchString(phrase) {
		return PartTypePart
	}
	lower := strings.ToLower(phrase)
	switch {
	case strings.Contains(lower, "condensed"), strings.Contains(lower, "piano conductor"):
		return PartTypeCondensedScore
	case strings.Contains(lower, "conductor"):
		return PartTypeConductorScore
	default:
		return PartTypeFullScore
	}
}

func scoreDisplayName(pt PartType) string {
	switch pt {
	case PartTypeConductorScore:
		return "Conductor Score"
	case PartTypeCondensedScore:
		return "Condensed Score"
	default:
		return "Full Score"
	}
}
