package parts

import (
	"regexp"
	"strings"
)

// canonicalInstrument is one entry in the instrument registry.
type canonicalInstrument struct {
	Name          string
	Transposition Transposition
	Section       Section
}

// instrumentPattern maps a raw-phrase regex to a registry entry. The table is
// ordered most-specific-first: qualified instruments (bass clarinet, alto sax)
// before their bare counterparts, bare instruments last.
type instrumentPattern struct {
	re     *regexp.Regexp
	result canonicalInstrument
}

// forbiddenLabels are upstream absence signals that must never survive as a
// final instrument or part name. Matching is case/whitespace-insensitive.
var forbiddenLabels = map[string]struct{}{
	"":          {},
	"null":      {},
	"none":      {},
	"n/a":       {},
	"na":        {},
	"unknown":   {},
	"undefined": {},
	"blank":     {},
	"-":         {},
	"--":        {},
}

// blankLabels identify pages explicitly classified as blank or spacer. These
// are the one carve-out from the forbidden-label guard: a deliberate blank
// page is a real classification, not an absence signal.
var blankLabels = map[string]struct{}{
	"blank":        {},
	"blank page":   {},
	"spacer":       {},
	"blank/spacer": {},
}

// instrumentRegistry is the canonical instrument set used for fuzzy matching
// and for re-deriving section/transposition from a canonical label.
// Read-only after init; safe to share across concurrent invocations.
var instrumentRegistry = []canonicalInstrument{
	{"Piccolo", TranspositionC, SectionWoodwinds},
	{"Flute", TranspositionC, SectionWoodwinds},
	{"Oboe", TranspositionC, SectionWoodwinds},
	{"English Horn", TranspositionF, SectionWoodwinds},
	{"Bassoon", TranspositionC, SectionWoodwinds},
	{"Eb Clarinet", TranspositionEb, SectionWoodwinds},
	{"Bb Clarinet", TranspositionBb, SectionWoodwinds},
	{"Alto Clarinet", TranspositionEb, SectionWoodwinds},
	{"Bass Clarinet", TranspositionBb, SectionWoodwinds},
	{"Soprano Saxophone", TranspositionBb, SectionWoodwinds},
	{"Alto Saxophone", TranspositionEb, SectionWoodwinds},
	{"Tenor Saxophone", TranspositionBb, SectionWoodwinds},
	{"Baritone Saxophone", TranspositionEb, SectionWoodwinds},
	{"Bb Trumpet", TranspositionBb, SectionBrass},
	{"Cornet", TranspositionBb, SectionBrass},
	{"Flugelhorn", TranspositionBb, SectionBrass},
	{"F Horn", TranspositionF, SectionBrass},
	{"Trombone", TranspositionC, SectionBrass},
	{"Bass Trombone", TranspositionC, SectionBrass},
	{"Euphonium", TranspositionC, SectionBrass},
	{"Baritone T.C.", TranspositionBb, SectionBrass},
	{"Tuba", TranspositionC, SectionBrass},
	{"Timpani", TranspositionC, SectionPercussion},
	{"Snare Drum", TranspositionC, SectionPercussion},
	{"Bass Drum", TranspositionC, SectionPercussion},
	{"Cymbals", TranspositionC, SectionPercussion},
	{"Mallet Percussion", TranspositionC, SectionPercussion},
	{"Drum Set", TranspositionC, SectionPercussion},
	{"Percussion", TranspositionC, SectionPercussion},
	{"Violin", TranspositionC, SectionStrings},
	{"Viola", TranspositionC, SectionStrings},
	{"Cello", TranspositionC, SectionStrings},
	{"String Bass", TranspositionC, SectionStrings},
	{"Harp", TranspositionC, SectionStrings},
	{"Guitar", TranspositionC, SectionStrings},
	{"Electric Bass", TranspositionC, SectionStrings},
	{"Piano", TranspositionC, SectionKeyboard},
	{"Keyboard", TranspositionC, SectionKeyboard},
	{"Organ", TranspositionC, SectionKeyboard},
	{"Vocal", TranspositionC, SectionVocals},
	{"Choir", TranspositionC, SectionVocals},
}

// instrumentAliases maps common abbreviations to registry names. Keys are
// lowercase with spaces and punctuation collapsed.
var instrumentAliases = map[string]string{
	"picc":     "Piccolo",
	"fl":       "Flute",
	"ob":       "Oboe",
	"bsn":      "Bassoon",
	"cl":       "Bb Clarinet",
	"clar":     "Bb Clarinet",
	"bcl":      "Bass Clarinet",
	"asax":     "Alto Saxophone",
	"tsax":     "Tenor Saxophone",
	"bsax":     "Baritone Saxophone",
	"barisax":  "Baritone Saxophone",
	"tpt":      "Bb Trumpet",
	"trp":      "Bb Trumpet",
	"trpt":     "Bb Trumpet",
	"hn":       "F Horn",
	"frhorn":   "F Horn",
	"tbn":      "Trombone",
	"trb":      "Trombone",
	"euph":     "Euphonium",
	"bar":      "Euphonium",
	"timp":     "Timpani",
	"perc":     "Percussion",
	"vln":      "Violin",
	"vla":      "Viola",
	"vc":       "Cello",
	"cb":       "String Bass",
	"pno":      "Piano",
	"kbd":      "Keyboard",
	"sd":       "Snare Drum",
	"bd":       "Bass Drum",
	"bells":    "Mallet Percussion",
	"glock":    "Mallet Percussion",
	"xylo":     "Mallet Percussion",
	"marimba":  "Mallet Percussion",
	"vibes":    "Mallet Percussion",
	"drumset":  "Drum Set",
	"drums":    "Drum Set",
	"voice":    "Vocal",
	"sousa":    "Tuba",
}

// instrumentPatterns is the ordered pattern table. Qualified combinations
// come first so "bass clarinet" never resolves through the bare "clarinet"
// rule. Read-only after init.
var instrumentPatterns = []instrumentPattern{
	{rx(`piccolo|\bpicc\b`), canon("Piccolo")},
	{rx(`english\s*horn|cor\s*anglais`), canon("English Horn")},
	{rx(`alto\s*clar`), canon("Alto Clarinet")},
	{rx(`bass\s*clar|\bb\.?\s*cl\b`), canon("Bass Clarinet")},
	{rx(`e\s*(?:♭|b|flat)\s*clar`), canon("Eb Clarinet")},
	{rx(`contra\s*bassoon|contrabassoon`), canon("Bassoon")},
	{rx(`bassoon|\bbsn\b`), canon("Bassoon")},
	{rx(`clarinet|\bclar\b|\bcl\b`), canon("Bb Clarinet")},
	{rx(`flute|\bfl\b`), canon("Flute")},
	{rx(`oboe|\bob\b`), canon("Oboe")},
	{rx(`soprano\s*sax`), canon("Soprano Saxophone")},
	{rx(`alto\s*sax`), canon("Alto Saxophone")},
	{rx(`tenor\s*sax`), canon("Tenor Saxophone")},
	{rx(`bari(?:tone)?\s*sax`), canon("Baritone Saxophone")},
	{rx(`saxophone|\bsax\b`), canon("Alto Saxophone")},
	{rx(`flugel\s*horn|flugelhorn`), canon("Flugelhorn")},
	{rx(`cornet`), canon("Cornet")},
	{rx(`trumpet|\btpt\b|\btrpt\b`), canon("Bb Trumpet")},
	{rx(`french\s*horn|f\s*horn|\bhorn\b|\bhn\b`), canon("F Horn")},
	{rx(`bass\s*trombone`), canon("Bass Trombone")},
	{rx(`trombone|\btbn\b|\btrb\b`), canon("Trombone")},
	{rx(`euphonium|\beuph\b`), canon("Euphonium")},
	{rx(`baritone\s*t\.?\s*c\.?|\bbar\.?\s*t\.?\s*c\b`), canon("Baritone T.C.")},
	{rx(`baritone\s*(?:b\.?\s*c\.?)?$`), canon("Euphonium")},
	{rx(`sousaphone|tuba|\bbasses\b`), canon("Tuba")},
	{rx(`timpani|\btimp\b`), canon("Timpani")},
	{rx(`snare`), canon("Snare Drum")},
	{rx(`bass\s*drum`), canon("Bass Drum")},
	{rx(`cymbal`), canon("Cymbals")},
	{rx(`mallet|bells|glockenspiel|xylophone|marimba|vibraphone`), canon("Mallet Percussion")},
	{rx(`drum\s*set|drum\s*kit`), canon("Drum Set")},
	{rx(`percussion|\bperc\b`), canon("Percussion")},
	{rx(`violin|\bvln\b`), canon("Violin")},
	{rx(`viola(?:s)?\b`), canon("Viola")},
	{rx(`(?:violon)?cello|\bvc\b`), canon("Cello")},
	{rx(`string\s*bass|double\s*bass|contrabass|upright\s*bass`), canon("String Bass")},
	{rx(`electric\s*bass|bass\s*guitar`), canon("Electric Bass")},
	{rx(`guitar`), canon("Guitar")},
	{rx(`harp`), canon("Harp")},
	{rx(`piano|\bpno\b`), canon("Piano")},
	{rx(`keyboard|synth`), canon("Keyboard")},
	{rx(`organ`), canon("Organ")},
	{rx(`choir|chorus|\bsatb\b`), canon("Choir")},
	{rx(`vocal|voice`), canon("Vocal")},
}

var registryByName map[string]canonicalInstrument

func init() {
	registryByName = make(map[string]canonicalInstrument, len(instrumentRegistry))
	for _, ci := range instrumentRegistry {
		registryByName[foldKey(ci.Name)] = ci
	}
}

func rx(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// canon looks up a registry entry by display name. Panics at init time if the
// pattern table references an unregistered instrument.
func canon(name string) canonicalInstrument {
	for _, ci := range instrumentRegistry {
		if ci.Name == name {
			return ci
		}
	}
	panic("parts: pattern references unknown instrument " + name)
}

// foldKey lowercases a phrase and strips everything but letters and digits,
// for alias and fuzzy comparisons.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsForbiddenLabel reports whether a label is an upstream absence sentinel
// that must never be used as a real value.
func IsForbiddenLabel(s string) bool {
	_, ok := forbiddenLabels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// IsBlankLabel reports whether a label explicitly classifies a blank or
// spacer page.
func IsBlankLabel(s string) bool {
	_, ok := blankLabels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
