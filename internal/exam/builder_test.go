package exam_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/exam"
)

func q(id, module string) bank.Question {
	return bank.Question{
		ID:      bank.ID(id),
		Module:  bank.ID(module),
		Prompt:  "q" + id,
		Options: bank.Options{{Letter: "A", Text: "a"}, {Letter: "B", Text: "b"}},
		Correct: "A",
	}
}

func repoWith(t *testing.T, qs ...bank.Question) *bank.Repository {
	t.Helper()
	repo := bank.NewRepository()
	if err := repo.LoadQuestions(qs); err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	return repo
}

// bigRepo spreads n questions over modules "1".."4".
func bigRepo(t *testing.T, n int) *bank.Repository {
	qs := make([]bank.Question, n)
	for i := range qs {
		qs[i] = q(fmt.Sprint(i+1), fmt.Sprint(i%4+1))
	}
	return repoWith(t, qs...)
}

func TestBuildScenario(t *testing.T) {
	repo := repoWith(t, q("1", "1"), q("2", "2"), q("3", "1"))
	b := exam.NewBuilder(rand.New(rand.NewPCG(1, 2)))

	ex, err := b.Build(exam.Selection{"1"}, repo, exam.DefaultSize)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ex.Questions) != 2 {
		t.Fatalf("len = %d, want 2", len(ex.Questions))
	}
	got := map[bank.ID]bool{}
	for _, qq := range ex.Questions {
		got[qq.ID] = true
	}
	if !got["1"] || !got["3"] {
		t.Fatalf("questions = %v, want {1,3}", got)
	}
}

func TestBuildEmptySelection(t *testing.T) {
	repo := bigRepo(t, 8)
	_, err := exam.NewBuilder(nil).Build(nil, repo, 10)
	if !errors.Is(err, exam.ErrEmptySelection) {
		t.Fatalf("want ErrEmptySelection, got %v", err)
	}
	var ese *exam.EmptySelectionError
	if !errors.As(err, &ese) {
		t.Fatalf("want *EmptySelectionError, got %T", err)
	}
}

func TestBuildProperties(t *testing.T) {
	repo := bigRepo(t, 40)
	selections := []exam.Selection{
		{"1"}, {"2", "3"}, {"1", "2", "3", "4"}, {"4", "4"}, {"5"}, {"1", "5"},
	}
	for seed := uint64(0); seed < 20; seed++ {
		b := exam.NewBuilder(rand.New(rand.NewPCG(seed, seed+1)))
		for _, sel := range selections {
			ex, err := b.Build(sel, repo, exam.DefaultSize)
			if err != nil {
				t.Fatalf("Build(%v): %v", sel, err)
			}

			allowed := map[string]bool{}
			eligible := 0
			for _, m := range sel.Distinct() {
				allowed[m] = true
				eligible += len(repo.QuestionsForModule(m))
			}
			if want := min(exam.DefaultSize, eligible); len(ex.Questions) != want {
				t.Errorf("Build(%v) len = %d, want %d", sel, len(ex.Questions), want)
			}
			seen := map[bank.ID]bool{}
			for _, qq := range ex.Questions {
				if !allowed[string(qq.Module)] {
					t.Errorf("Build(%v) returned question of module %s", sel, qq.Module)
				}
				if seen[qq.ID] {
					t.Errorf("Build(%v) duplicated question %s", sel, qq.ID)
				}
				seen[qq.ID] = true
			}
		}
	}
}

func TestBuildUnknownModulesGiveEmptyExam(t *testing.T) {
	repo := bigRepo(t, 8)
	ex, err := exam.NewBuilder(nil).Build(exam.Selection{"99"}, repo, 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ex.Questions) != 0 {
		t.Fatalf("want empty exam, got %d questions", len(ex.Questions))
	}
}

func TestBuildCustomSize(t *testing.T) {
	repo := bigRepo(t, 40)
	b := exam.NewBuilder(nil)
	ex, _ := b.Build(exam.Selection{"1", "2"}, repo, 3)
	if len(ex.Questions) != 3 {
		t.Fatalf("len = %d, want 3", len(ex.Questions))
	}
	ex, _ = b.Build(exam.Selection{"1", "2"}, repo, 0)
	if len(ex.Questions) != exam.DefaultSize {
		t.Fatalf("size 0 should fall back to DefaultSize, got %d", len(ex.Questions))
	}
}

// Every question should be able to land in every position.
func TestShuffleCoversPositions(t *testing.T) {
	repo := repoWith(t, q("1", "1"), q("2", "1"), q("3", "1"), q("4", "1"))
	b := exam.NewBuilder(rand.New(rand.NewPCG(42, 7)))

	hits := map[string]int{}
	for i := 0; i < 2000; i++ {
		ex, err := b.Build(exam.Selection{"1"}, repo, 4)
		if err != nil {
			t.Fatal(err)
		}
		for pos, qq := range ex.Questions {
			hits[fmt.Sprintf("%s@%d", qq.ID, pos)]++
		}
	}
	for id := 1; id <= 4; id++ {
		for pos := 0; pos < 4; pos++ {
			n := hits[fmt.Sprintf("%d@%d", id, pos)]
			// expected 500; a uniform shuffle stays far from these bounds
			if n < 350 || n > 650 {
				t.Errorf("question %d at position %d: %d hits", id, pos, n)
			}
		}
	}
}

func TestModuleQuizKeepsBankOrder(t *testing.T) {
	repo := repoWith(t, q("1", "1"), q("2", "2"), q("3", "1"), q("4", "1"))
	quiz := exam.ModuleQuiz(repo, "1")
	if quiz.Module != "1" || len(quiz.Questions) != 3 {
		t.Fatalf("quiz = %+v", quiz)
	}
	for i, want := range []bank.ID{"1", "3", "4"} {
		if quiz.Questions[i].ID != want {
			t.Errorf("quiz[%d] = %s, want %s", i, quiz.Questions[i].ID, want)
		}
	}
}
