package quiz

import "github.com/carpick/carpick/internal/catalog"

// Evaluator scores a submitted answer against a round. Pure: evaluation
// never mutates the round or the evaluator.
type Evaluator struct {
	// Strict requires make, model, and year to all match the target.
	// When false, the year is forgiven; make and model must still match.
	Strict bool
}

// Evaluate reports whether the submitted record answers the round
// correctly. The submitted record must be one of the round's choices
// (identity: ImagePath); anything else is *ErrInvalidChoice.
func (e Evaluator) Evaluate(r *Round, submitted catalog.Record) (bool, error) {
	if _, ok := r.ChoiceByPath(submitted.ImagePath); !ok {
		return false, &ErrInvalidChoice{ImagePath: submitted.ImagePath}
	}
	if e.Strict {
		return submitted.SameTriple(r.Target), nil
	}
	return submitted.Make == r.Target.Make && submitted.Model == r.Target.Model, nil
}
