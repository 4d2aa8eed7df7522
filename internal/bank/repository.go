package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Repository holds the question bank. Load is the only mutator: it swaps the
// whole set at once, so readers see either the old or the new bank. Loads are
// serialized and the last one to finish wins.
type Repository struct {
	mu        sync.RWMutex
	questions []Question
	byID      map[ID]int
}

func NewRepository() *Repository {
	return &Repository{byID: map[ID]int{}}
}

// Load decodes a JSON array of questions and replaces the bank. On error the
// bank is left untouched.
func (r *Repository) Load(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return &FormatError{Index: -1, Reason: "expected a JSON array of questions"}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return &FormatError{Index: -1, Err: err}
	}

	questions := make([]Question, 0, len(raw))
	for i, rec := range raw {
		var q Question
		if err := json.Unmarshal(rec, &q); err != nil {
			return &FormatError{Index: i, Err: err}
		}
		questions = append(questions, q)
	}
	return r.LoadQuestions(questions)
}

// LoadQuestions validates already decoded questions and replaces the bank.
func (r *Repository) LoadQuestions(questions []Question) error {
	next := make([]Question, 0, len(questions))
	byID := make(map[ID]int, len(questions))
	for i, q := range questions {
		if field, reason := q.validate(); field != "" {
			return &FormatError{Index: i, Field: field, Reason: reason}
		}
		if _, dup := byID[q.ID]; dup {
			return &FormatError{Index: i, Field: "id", Reason: fmt.Sprintf("duplicate id %q", q.ID)}
		}
		byID[q.ID] = len(next)
		next = append(next, q.clone())
	}

	r.mu.Lock()
	r.questions = next
	r.byID = byID
	r.mu.Unlock()
	return nil
}

// QuestionsForModule returns every question whose module identifier, in
// string form, equals moduleID. Bank order is kept.
func (r *Repository) QuestionsForModule(moduleID string) []Question {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Question{}
	for _, q := range r.questions {
		if string(q.Module) == moduleID {
			out = append(out, q.clone())
		}
	}
	return out
}

func (r *Repository) Get(id string) (Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[ID(id)]
	if !ok {
		return Question{}, false
	}
	return r.questions[i].clone(), true
}

func (r *Repository) All() []Question {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Question, len(r.questions))
	for i, q := range r.questions {
		out[i] = q.clone()
	}
	return out
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions)
}

// Modules lists the distinct module identifiers in bank order.
func (r *Repository) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[ID]bool{}
	out := []string{}
	for _, q := range r.questions {
		if !seen[q.Module] {
			seen[q.Module] = true
			out = append(out, string(q.Module))
		}
	}
	return out
}
