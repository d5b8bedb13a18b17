package quiz

import "fmt"

// ErrInsufficientData means the index does not hold enough distinct cars to
// fill a round. Fatal to starting a round; surfaced to the player as "not
// enough data".
type ErrInsufficientData struct {
	Distinct int
	Need     int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("not enough distinct cars to build a round: have %d, need %d",
		e.Distinct, e.Need)
}

// ErrInvalidChoice means the submitted record is not among the round's
// choices. This indicates a presentation-layer bug, not player error.
type ErrInvalidChoice struct {
	ImagePath string
}

func (e *ErrInvalidChoice) Error() string {
	return fmt.Sprintf("submitted record %q is not among the round's choices", e.ImagePath)
}
