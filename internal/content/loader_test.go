package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/storage"
)

type mapSource map[string]string

func (m mapSource) Fetch(_ context.Context, name string) ([]byte, error) {
	b, ok := m[name]
	if !ok {
		return nil, &storage.FetchError{Name: name, Err: storage.ErrNotFound}
	}
	return []byte(b), nil
}

const module1 = `{
  "id": 1,
  "titulo": "Imunidade inata",
  "subtopicos": [
    {
      "titulo": "Barreiras",
      "conteudo": "<p>Pele e <strong>mucosas</strong><script>alert(1)</script></p>",
      "imagens": [
        {"src": "img/pele.png", "legenda": "Pele", "descricao_detalhada": "Corte histológico da pele"},
        {"src": "img/muco.png", "legenda": "Muco"}
      ],
      "flashcards": [{"frente": "TLR", "verso": "Receptor Toll-like"}]
    },
    {"titulo": "Complemento", "conteudo": "<p>C3</p>"}
  ]
}`

func TestModule(t *testing.T) {
	l := content.NewLoader(mapSource{"modulo1.json": module1})
	m, err := l.Module(context.Background(), "1")
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	if m.ID != "1" || m.Title != "Imunidade inata" || len(m.Subtopics) != 2 {
		t.Fatalf("module = %+v", m)
	}
	body := m.Subtopics[0].Body
	if strings.Contains(body, "<script>") || !strings.Contains(body, "<strong>mucosas</strong>") {
		t.Errorf("body not sanitised as expected: %q", body)
	}
	imgs := m.Subtopics[0].Images
	if imgs[0].Alt != "Corte histológico da pele" || imgs[1].Alt != "Muco" {
		t.Errorf("alt text = %q, %q", imgs[0].Alt, imgs[1].Alt)
	}
	if len(m.Subtopics[0].Flashcards) != 1 || m.Subtopics[0].Flashcards[0].Back != "Receptor Toll-like" {
		t.Errorf("flashcards = %+v", m.Subtopics[0].Flashcards)
	}
	if m.Subtopics[1].Images == nil || m.Subtopics[1].Flashcards == nil {
		t.Error("missing lists should decode as empty, not nil")
	}
}

func TestModuleErrors(t *testing.T) {
	l := content.NewLoader(mapSource{"modulo2.json": `{"id":`})
	ctx := context.Background()

	if _, err := l.Module(ctx, "../questoes"); !errors.Is(err, content.ErrInvalidModuleID) {
		t.Error("path-like id should be rejected")
	}
	if _, err := l.Module(ctx, "2"); err == nil {
		t.Error("malformed module should fail")
	}
	if _, err := l.Module(ctx, "3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing module: %v", err)
	}
}

func TestReferences(t *testing.T) {
	l := content.NewLoader(mapSource{"referencias.json": `[{"referencia":"Abbas AK. Imunologia Celular e Molecular."}]`})
	refs, err := l.References(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || !strings.HasPrefix(refs[0].Text, "Abbas") {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestLoadBankKeepsPreviousOnFailure(t *testing.T) {
	repo := bank.NewRepository()
	good := `[{"id":1,"modulo":1,"comando":"x","alternativas":{"A":"a","B":"b"},"resposta_correta":"A"}]`
	if err := content.NewLoader(mapSource{"questoes.json": good}).LoadBank(context.Background(), repo); err != nil {
		t.Fatalf("LoadBank: %v", err)
	}

	bad := `[{"id":2,"modulo":1,"comando":"x","resposta_correta":"A"}]`
	err := content.NewLoader(mapSource{"questoes.json": bad}).LoadBank(context.Background(), repo)
	var fe *bank.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %v", err)
	}

	err = content.NewLoader(mapSource{}).LoadBank(context.Background(), repo)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if repo.Len() != 1 {
		t.Fatalf("bank should keep the first load, Len = %d", repo.Len())
	}
}

func TestSanitizeQuestion(t *testing.T) {
	q := bank.Question{
		ID:       "1",
		Module:   "1",
		Case:     `<p>febre</p><img src="x" onerror="alert(1)">`,
		Prompt:   `<script>alert(1)</script>Qual <b>célula</b>?`,
		Options:  bank.Options{{Letter: "A", Text: `<b onclick="x()">NK</b>`}, {Letter: "B", Text: "IgE"}},
		Correct:  "B",
		Feedback: `<a href="javascript:x()">ver</a>`,
	}
	got := content.SanitizeQuestion(q)

	for _, s := range []string{got.Case, got.Prompt, got.Feedback, got.Options[0].Text} {
		for _, bad := range []string{"<script", "onerror", "onclick", "javascript:"} {
			if strings.Contains(s, bad) {
				t.Errorf("%q still contains %s", s, bad)
			}
		}
	}
	if !strings.Contains(got.Prompt, "<b>célula</b>") || !strings.Contains(got.Case, "<p>febre</p>") {
		t.Errorf("safe markup dropped: %q / %q", got.Prompt, got.Case)
	}
	if got.Correct != "B" || got.Options[0].Letter != "A" || got.Options[1].Text != "IgE" {
		t.Errorf("key or letters changed: %+v", got)
	}
	if q.Options[0].Text != `<b onclick="x()">NK</b>` {
		t.Errorf("input question mutated: %q", q.Options[0].Text)
	}
}

func TestModuleIDFromDocument(t *testing.T) {
	cases := []struct {
		name string
		id   string
		ok   bool
	}{
		{"modulo3.json", "3", true},
		{"modulo.json", "", false},
		{"questoes.json", "", false},
		{"img/modulo1.png", "", false},
		{"modulo/x.json", "", false},
	}
	for _, c := range cases {
		id, ok := content.ModuleIDFromDocument(c.name)
		if ok != c.ok || (ok && id != c.id) {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", c.name, id, ok, c.id, c.ok)
		}
	}
}
