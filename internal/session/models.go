package session

import (
	"time"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/grading"
)

type Kind string

const (
	KindQuiz Kind = "quiz"
	KindExam Kind = "exam"
)

// State of one question inside a session. Graded is terminal.
type State string

const (
	Unanswered State = "unanswered"
	Graded     State = "graded"
)

type Item struct {
	Question bank.Question   `json:"question"`
	State    State           `json:"state"`
	Result   *grading.Result `json:"result,omitempty"`
}

type Session struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Modules   []string  `json:"modules"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Session) Summary() grading.Summary {
	results := make([]grading.Result, 0, len(s.Items))
	for _, it := range s.Items {
		if it.State == Graded && it.Result != nil {
			results = append(results, *it.Result)
		}
	}
	return grading.Tally(len(s.Items), results)
}

func (s Session) clone() Session {
	out := s
	out.Modules = append([]string(nil), s.Modules...)
	out.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		cp := it
		cp.Question.Options = append(bank.Options(nil), it.Question.Options...)
		if it.Result != nil {
			r := *it.Result
			cp.Result = &r
		}
		out.Items[i] = cp
	}
	return out
}
