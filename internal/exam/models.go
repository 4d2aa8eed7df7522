package exam

import "github.com/mind-engage/imuno/internal/bank"

const DefaultSize = 10

// QuestionSource answers "all questions of module m". *bank.Repository
// satisfies it.
type QuestionSource interface {
	QuestionsForModule(moduleID string) []bank.Question
}

// Selection is the set of module identifiers chosen for an exam.
type Selection []string

// Distinct returns the identifiers without repeats, keeping first-seen order.
func (s Selection) Distinct() []string {
	seen := make(map[string]bool, len(s))
	out := make([]string, 0, len(s))
	for _, m := range s {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

type Exam struct {
	Modules   []string        `json:"modules"`
	Questions []bank.Question `json:"questions"`
}

// Quiz is the full, unshuffled question list of one module.
type Quiz struct {
	Module    string          `json:"module"`
	Questions []bank.Question `json:"questions"`
}
