package grading

import (
	"fmt"
	"strings"

	"github.com/mind-engage/imuno/internal/bank"
)

type Verdict string

const (
	Correct   Verdict = "correct"
	Incorrect Verdict = "incorrect"
)

// Result is the outcome of grading one submitted answer.
type Result struct {
	QuestionID string             `json:"question_id"`
	Order      []string           `json:"order"`    // option letters in display order
	Verdicts   map[string]Verdict `json:"verdicts"` // every offered letter
	Selected   string             `json:"selected"`
	IsCorrect  bool               `json:"is_correct"`
	Locked     bool               `json:"locked"`
}

// InvalidOptionError is returned when the submitted letter is not one of the
// question's options.
type InvalidOptionError struct {
	QuestionID string
	Letter     string
	Valid      []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("grading: question %s has no option %q (valid: %s)",
		e.QuestionID, e.Letter, strings.Join(e.Valid, ", "))
}

// Grader grades a single submitted option letter.
type Grader interface {
	Grade(q bank.Question, letter string) (Result, error)
}

type singleChoice struct{}

// NewDefaultGrader returns the single-correct-option grader.
func NewDefaultGrader() Grader { return singleChoice{} }

func (singleChoice) Grade(q bank.Question, letter string) (Result, error) {
	return Grade(q, letter)
}

// Grade marks the question's correct letter as Correct and every other letter
// as Incorrect. The verdicts depend only on q.Correct; letter must be one of
// the offered options. The result is always locked.
func Grade(q bank.Question, letter string) (Result, error) {
	if !q.Options.Has(letter) {
		return Result{}, &InvalidOptionError{QuestionID: string(q.ID), Letter: letter, Valid: q.Options.Letters()}
	}
	res := Result{
		QuestionID: string(q.ID),
		Order:      q.Options.Letters(),
		Verdicts:   make(map[string]Verdict, len(q.Options)),
		Selected:   letter,
		IsCorrect:  letter == q.Correct,
		Locked:     true,
	}
	for _, opt := range q.Options {
		if opt.Letter == q.Correct {
			res.Verdicts[opt.Letter] = Correct
		} else {
			res.Verdicts[opt.Letter] = Incorrect
		}
	}
	return res, nil
}
