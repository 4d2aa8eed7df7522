package exam

import (
	"math/rand/v2"

	"github.com/mind-engage/imuno/internal/bank"
)

type Builder struct {
	rng *rand.Rand
}

// NewBuilder returns a Builder. A nil rng uses the global source.
func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng}
}

// Build collects the questions of every selected module, shuffles them
// uniformly and keeps the first size of them. size <= 0 means DefaultSize.
// A selection whose modules have no questions yields an empty exam.
func (b *Builder) Build(sel Selection, src QuestionSource, size int) (Exam, error) {
	if len(sel) == 0 {
		return Exam{}, ErrEmptySelection
	}
	if size <= 0 {
		size = DefaultSize
	}

	modules := sel.Distinct()
	seen := map[bank.ID]bool{}
	pool := []bank.Question{}
	for _, m := range modules {
		for _, q := range src.QuestionsForModule(m) {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			pool = append(pool, q)
		}
	}

	b.shuffle(pool)
	if len(pool) > size {
		pool = pool[:size]
	}
	return Exam{Modules: modules, Questions: pool}, nil
}

// shuffle is a Fisher-Yates pass: each position swaps with a uniformly chosen
// index at or below it.
func (b *Builder) shuffle(qs []bank.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := b.intN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

func (b *Builder) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}

// ModuleQuiz returns all questions of one module in bank order.
func ModuleQuiz(src QuestionSource, moduleID string) Quiz {
	return Quiz{Module: moduleID, Questions: src.QuestionsForModule(moduleID)}
}
