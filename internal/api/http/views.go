package http

import (
	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/grading"
	"github.com/mind-engage/imuno/internal/session"
)

// questionView hides the answer key and feedback until the question is graded.
// Text fields carry sanitised HTML.
type questionView struct {
	ID       string          `json:"id"`
	Module   string          `json:"modulo"`
	Case     string          `json:"caso_clinico"`
	Prompt   string          `json:"comando"`
	Options  bank.Options    `json:"alternativas"`
	State    session.State   `json:"state"`
	Result   *grading.Result `json:"result,omitempty"`
	Correct  string          `json:"resposta_correta,omitempty"`
	Feedback string          `json:"feedback,omitempty"`
}

type sessionView struct {
	ID        string          `json:"id"`
	Kind      session.Kind    `json:"kind"`
	Modules   []string        `json:"modules"`
	Questions []questionView  `json:"questions"`
	Summary   grading.Summary `json:"summary"`
}

type answerView struct {
	Result   grading.Result `json:"result"`
	Correct  string         `json:"resposta_correta"`
	Feedback string         `json:"feedback"`
}

func toSessionView(s session.Session) sessionView {
	v := sessionView{
		ID:        s.ID,
		Kind:      s.Kind,
		Modules:   s.Modules,
		Questions: make([]questionView, len(s.Items)),
		Summary:   s.Summary(),
	}
	if v.Modules == nil {
		v.Modules = []string{}
	}
	for i, it := range s.Items {
		q := content.SanitizeQuestion(it.Question)
		qv := questionView{
			ID:      string(q.ID),
			Module:  string(q.Module),
			Case:    q.Case,
			Prompt:  q.Prompt,
			Options: q.Options,
			State:   it.State,
		}
		if it.State == session.Graded {
			qv.Result = it.Result
			qv.Correct = q.Correct
			qv.Feedback = q.Feedback
		}
		v.Questions[i] = qv
	}
	return v
}

func toAnswerView(res grading.Result, q bank.Question) answerView {
	q = content.SanitizeQuestion(q)
	return answerView{Result: res, Correct: q.Correct, Feedback: q.Feedback}
}
