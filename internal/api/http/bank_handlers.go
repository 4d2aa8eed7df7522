package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/content"
)

type moduleSummary struct {
	Module    string `json:"modulo"`
	Questions int    `json:"questions"`
}

// GET /bank/modules
func ListBankModulesHandler(repo *bank.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mods := repo.Modules()
		out := make([]moduleSummary, 0, len(mods))
		for _, m := range mods {
			out = append(out, moduleSummary{Module: m, Questions: len(repo.QuestionsForModule(m))})
		}
		config.JSON(w, http.StatusOK, out)
	}
}

// Invalidator drops cached documents before a reload. Optional.
type Invalidator interface {
	Invalidate(ctx context.Context, names ...string) error
}

// POST /bank/reload
func ReloadBankHandler(loader *content.Loader, repo *bank.Repository, cache Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())
		if cache != nil {
			if err := cache.Invalidate(r.Context(), content.BankDocument); err != nil {
				log.WithError(err).Warn("cache invalidation failed")
			}
		}

		err := loader.LoadBank(r.Context(), repo)
		var fe *bank.FormatError
		switch {
		case err == nil:
			config.JSON(w, http.StatusOK, map[string]int{"questions": repo.Len()})
		case errors.As(err, &fe):
			log.WithError(err).Error("question bank rejected")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			log.WithError(err).Error("question bank fetch failed")
			http.Error(w, "question bank unavailable", http.StatusBadGateway)
		}
	}
}

// GET /readyz reports ready once the bank holds questions.
func ReadyHandler(repo *bank.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo.Len() == 0 {
			http.Error(w, "question bank empty", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
