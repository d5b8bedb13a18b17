package quiz

import (
	"time"

	"github.com/carpick/carpick/internal/catalog"
)

// NumChoices is the number of answer choices in every round: the target
// plus nine distractors.
const NumChoices = 10

// Round is one generated question. Transient: created per round and
// discarded after evaluation.
type Round struct {
	ID          string
	Target      catalog.Record
	Choices     []catalog.Record
	PresentedAt time.Time
}

// TargetIndex returns the position of the target within Choices.
func (r *Round) TargetIndex() int {
	for i, c := range r.Choices {
		if c.ImagePath == r.Target.ImagePath {
			return i
		}
	}
	return -1
}

// ChoiceByPath looks a choice up by its ImagePath identity.
func (r *Round) ChoiceByPath(path string) (catalog.Record, bool) {
	for _, c := range r.Choices {
		if c.ImagePath == path {
			return c, true
		}
	}
	return catalog.Record{}, false
}
