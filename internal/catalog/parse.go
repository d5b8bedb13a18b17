package catalog

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/carpick/carpick/internal/lexicon"
)

// yearPattern matches candidate year tokens. The numeric range check is
// separate so an out-of-range token like 2049 falls through to the model.
var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

// Parse extracts a Record from an image path relative to the data
// directory. The stem is tokenized on underscores and read as
// make tokens, model tokens, year, then an ignored trailing hash:
//
//	Acura_ILX_2013_x7f3a.jpg → {Acura, ILX, 2013}
//
// The year is the first 4-digit token whose value lies in [MinYear, MaxYear];
// earlier in-range tokens always win over later ones. The make is resolved
// from the tokens before the year via the lexicon window, falling back to a
// humanized first token. Everything between the consumed make tokens and the
// year forms the model. Parse returns false when no valid year exists, when
// the year leaves no room for a make, or when the model would be empty.
func Parse(relPath string, lex *lexicon.Lexicon) (Record, bool) {
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.Split(stem, "_")

	yearIdx := findYearIndex(tokens)
	if yearIdx <= 0 {
		return Record{}, false
	}

	preYear := tokens[:yearIdx]
	makeName, consumed := lex.ResolveTokens(preYear)
	if makeName == "" {
		makeName = lexicon.HumanizeToken(preYear[0])
		consumed = 1
	}

	modelTokens := preYear[consumed:]
	if len(modelTokens) == 0 {
		return Record{}, false
	}
	model := lexicon.HumanizeTokens(modelTokens)

	year, _ := strconv.Atoi(tokens[yearIdx])
	return Record{
		ImagePath: relPath,
		Make:      makeName,
		Model:     model,
		Year:      year,
	}, true
}

// findYearIndex returns the index of the first in-range year token, or -1.
// First in-range occurrence wins; this is the documented selection rule, not
// an artifact of iteration order.
func findYearIndex(tokens []string) int {
	for i, tok := range tokens {
		if !yearPattern.MatchString(tok) {
			continue
		}
		year, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if year >= MinYear && year <= MaxYear {
			return i
		}
	}
	return -1
}
