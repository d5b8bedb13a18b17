package quiz

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carpick/carpick/internal/catalog"
)

// triple keys records by the attributes a player is asked to name.
type triple struct {
	make  string
	model string
	year  int
}

func tripleOf(r catalog.Record) triple {
	return triple{make: r.Make, model: r.Model, year: r.Year}
}

// Generator builds rounds from an index. The random source is injected so
// rounds are reproducible under a fixed seed; the generator never touches
// the package-global rand state.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator around rng. A nil rng gets a time-seeded
// source, which callers wanting reproducibility should not rely on.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Round generates one round: a uniformly chosen target plus nine
// distractors, shuffled.
//
// Distractor selection is an explicit, documented ranking. The candidate
// pool holds one representative per distinct (make, model, year) triple
// other than the target's — the first record of that triple in index order.
// Candidates sharing the target's make are ranked by ascending absolute
// year difference (ties by ascending year, then model) and taken first, up
// to nine. If fewer than nine same-make candidates exist, the remainder is
// drawn uniformly at random from the other candidates.
func (g *Generator) Round(ix *catalog.Index) (*Round, error) {
	records := ix.Records

	if d := ix.DistinctTriples(); d < NumChoices {
		return nil, &ErrInsufficientData{Distinct: d, Need: NumChoices}
	}

	target := records[g.rng.Intn(len(records))]

	var sameMake, others []catalog.Record
	seen := map[triple]bool{tripleOf(target): true}
	for _, r := range records {
		k := tripleOf(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		if r.Make == target.Make {
			sameMake = append(sameMake, r)
		} else {
			others = append(others, r)
		}
	}

	sort.SliceStable(sameMake, func(i, j int) bool {
		di := absInt(sameMake[i].Year - target.Year)
		dj := absInt(sameMake[j].Year - target.Year)
		if di != dj {
			return di < dj
		}
		if sameMake[i].Year != sameMake[j].Year {
			return sameMake[i].Year < sameMake[j].Year
		}
		return sameMake[i].Model < sameMake[j].Model
	})

	distractors := sameMake
	if len(distractors) > NumChoices-1 {
		distractors = distractors[:NumChoices-1]
	}
	if need := NumChoices - 1 - len(distractors); need > 0 {
		g.rng.Shuffle(len(others), func(i, j int) {
			others[i], others[j] = others[j], others[i]
		})
		distractors = append(distractors, others[:need]...)
	}

	choices := make([]catalog.Record, 0, NumChoices)
	choices = append(choices, target)
	choices = append(choices, distractors...)
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return &Round{
		ID:          uuid.NewString(),
		Target:      target,
		Choices:     choices,
		PresentedAt: time.Now(),
	}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
