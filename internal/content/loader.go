package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/storage"
)

const (
	BankDocument       = "questoes.json"
	ReferencesDocument = "referencias.json"
)

var ErrInvalidModuleID = errors.New("invalid module id")

func ModuleDocument(id string) string { return "modulo" + id + ".json" }

// ModuleIDFromDocument reports the module id named by a modulo<N>.json
// document, if name is one.
func ModuleIDFromDocument(name string) (string, bool) {
	if !strings.HasPrefix(name, "modulo") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, "modulo"), ".json")
	return id, id != "" && !strings.ContainsAny(id, "/\\")
}

// Loader turns fetched documents into the question bank, modules and
// references. It does not retry; failures are returned to the caller.
type Loader struct {
	src    storage.Source
	policy *bluemonday.Policy
}

func NewLoader(src storage.Source) *Loader {
	return &Loader{src: src, policy: richText}
}

// LoadBank fetches the question bank and replaces repo's contents. On any
// error repo keeps its previous questions.
func (l *Loader) LoadBank(ctx context.Context, repo *bank.Repository) error {
	b, err := l.src.Fetch(ctx, BankDocument)
	if err != nil {
		return err
	}
	if err := repo.Load(b); err != nil {
		return err
	}
	config.WithContext(ctx).WithField("questions", repo.Len()).Info("question bank loaded")
	return nil
}

func (l *Loader) Module(ctx context.Context, id string) (Module, error) {
	if id == "" || strings.ContainsAny(id, "/\\") {
		return Module{}, fmt.Errorf("%w: %q", ErrInvalidModuleID, id)
	}
	b, err := l.src.Fetch(ctx, ModuleDocument(id))
	if err != nil {
		return Module{}, err
	}
	var m Module
	if err := json.Unmarshal(b, &m); err != nil {
		return Module{}, fmt.Errorf("decode %s: %w", ModuleDocument(id), err)
	}
	l.prepare(&m)
	return m, nil
}

// prepare sanitises rich text and fills image alt text from the detailed
// description, falling back to the caption.
func (l *Loader) prepare(m *Module) {
	for i := range m.Subtopics {
		st := &m.Subtopics[i]
		st.Body = l.policy.Sanitize(st.Body)
		if st.Images == nil {
			st.Images = []Image{}
		}
		if st.Flashcards == nil {
			st.Flashcards = []Flashcard{}
		}
		for j := range st.Images {
			img := &st.Images[j]
			img.Alt = img.Detail
			if img.Alt == "" {
				img.Alt = img.Caption
			}
		}
	}
}

func (l *Loader) References(ctx context.Context) ([]Reference, error) {
	b, err := l.src.Fetch(ctx, ReferencesDocument)
	if err != nil {
		return nil, err
	}
	refs := []Reference{}
	if err := json.Unmarshal(b, &refs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ReferencesDocument, err)
	}
	return refs, nil
}
