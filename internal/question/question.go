package question

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted means no eligible question remains under the current
	// exclusion set. It is a terminal condition, not a failure.
	ErrExhausted = errors.New("question pool exhausted")
)

// Question is the wire shape served to the client. Options map the four
// answer labels (A-D) to option text; CorrectAnswer must be one of the
// option keys.
type Question struct {
	ID            string            `json:"id,omitempty"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
	Category      string            `json:"category,omitempty"`
	Subcategory   string            `json:"subcategory,omitempty"`
	Difficulty    string            `json:"difficulty,omitempty"`
	NCLEXCategory string            `json:"nclexCategory,omitempty"`
}

// Validate checks the integrity invariants of a question. A question whose
// correct answer is not one of its options cannot be answered correctly and
// must not be served.
func (q *Question) Validate() error {
	if q.Question == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) == 0 {
		return errors.New("question has no options")
	}
	if q.CorrectAnswer == "" {
		return errors.New("question has no correct answer")
	}
	if _, ok := q.Options[q.CorrectAnswer]; !ok {
		return fmt.Errorf("correct answer %q is not an option key", q.CorrectAnswer)
	}
	return nil
}
