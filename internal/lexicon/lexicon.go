package lexicon

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// maxWindow is the largest number of leading tokens joined when resolving a
// multi-token make such as "Alfa_Romeo" or "Aston_Martin".
const maxWindow = 3

// Lexicon maps raw manufacturer tokens to canonical display names. It is
// immutable from the perspective of concurrent readers: Add is only legal
// before the lexicon is shared, and hot reload swaps in a fresh value
// instead of mutating one in place.
type Lexicon struct {
	makes  map[string][]string
	lookup map[string]string
}

// New builds a Lexicon from a canonical-name → aliases table. The canonical
// name itself is always registered as an alias of itself.
func New(makes map[string][]string) *Lexicon {
	l := &Lexicon{
		makes:  make(map[string][]string, len(makes)),
		lookup: make(map[string]string),
	}
	for canonical, aliases := range makes {
		l.register(canonical, aliases)
	}
	return l
}

// Default returns a Lexicon seeded with the built-in make table.
func Default() *Lexicon {
	return New(seedMakes())
}

func (l *Lexicon) register(canonical string, aliases []string) {
	l.makes[canonical] = append([]string(nil), aliases...)
	for _, alias := range append(append([]string(nil), aliases...), canonical) {
		if n := Normalize(alias); n != "" {
			l.lookup[n] = canonical
		}
	}
}

// Resolve maps a single raw token to its canonical make. Lookup is
// case-insensitive; a miss falls back to a title-cased humanization of the
// raw token, so Resolve never fails.
func (l *Lexicon) Resolve(raw string) string {
	if canonical, ok := l.lookup[Normalize(raw)]; ok {
		return canonical
	}
	return HumanizeToken(raw)
}

// ResolveTokens attempts to resolve a manufacturer from the leading tokens
// of a filename, trying the widest window first (up to 3 tokens) and
// shrinking until a known alias matches. It returns the canonical name and
// the number of tokens consumed, or ("", 0) when no alias matches.
func (l *Lexicon) ResolveTokens(tokens []string) (string, int) {
	window := len(tokens)
	if window > maxWindow {
		window = maxWindow
	}
	for size := window; size >= 1; size-- {
		candidate := Normalize(strings.Join(tokens[:size], " "))
		if canonical, ok := l.lookup[candidate]; ok {
			return canonical, size
		}
	}
	return "", 0
}

// Add registers a canonical make with extra aliases. Existing aliases for
// the same canonical name are kept. Previously resolved records are not
// invalidated; the next index rebuild picks the additions up.
func (l *Lexicon) Add(canonical string, aliases ...string) {
	existing := l.makes[canonical]
	merged := append([]string(nil), existing...)
	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		found := false
		for _, have := range merged {
			if Normalize(have) == Normalize(alias) {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, alias)
		}
	}
	l.register(canonical, merged)
}

// Canonicals returns all canonical make names in sorted order.
func (l *Lexicon) Canonicals() []string {
	names := make([]string, 0, len(l.makes))
	for name := range l.makes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the registered aliases for a canonical make.
func (l *Lexicon) Aliases(canonical string) []string {
	return append([]string(nil), l.makes[canonical]...)
}

// Makes returns a deep copy of the canonical → aliases table.
func (l *Lexicon) Makes() map[string][]string {
	out := make(map[string][]string, len(l.makes))
	for canonical, aliases := range l.makes {
		out[canonical] = append([]string(nil), aliases...)
	}
	return out
}

// Version returns a content hash of the alias table. The index cache
// artifact records it so lexicon edits invalidate the cache.
func (l *Lexicon) Version() string {
	keys := l.Canonicals()
	stable := make([][2]any, 0, len(keys))
	for _, k := range keys {
		aliases := append([]string(nil), l.makes[k]...)
		sort.Strings(aliases)
		stable = append(stable, [2]any{k, aliases})
	}
	raw, _ := json.Marshal(stable)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases a name and collapses every non-alphanumeric run to a
// single space, producing the lookup key form of an alias.
func Normalize(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

// HumanizeTokens joins the humanized form of each token with spaces.
func HumanizeTokens(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, HumanizeToken(tok))
	}
	return strings.Join(parts, " ")
}

// HumanizeToken cleans a raw filename token into display form. Acronyms,
// numeric tokens, and short all-caps tokens pass through unchanged;
// everything else has hyphens opened up and each word capitalized.
func HumanizeToken(tok string) string {
	if isAcronym(tok) {
		return tok
	}
	if isDigits(tok) {
		return tok
	}
	if len(tok) <= maxShortToken && tok == strings.ToUpper(tok) {
		return tok
	}
	cleaned := strings.ReplaceAll(tok, "-", " ")
	words := strings.Split(cleaned, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

const maxShortToken = 3

// isAcronym reports whether tok contains at least one letter and no
// lowercase letters, e.g. "ILX", "F150".
func isAcronym(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	if w == "" {
		return ""
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
