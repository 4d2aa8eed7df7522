package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/exam"
	"github.com/mind-engage/imuno/internal/session"
	"github.com/mind-engage/imuno/internal/storage"
)

type Deps struct {
	Bank     *bank.Repository
	Source   storage.Source
	Loader   *content.Loader
	Builder  *exam.Builder
	Sessions session.Store
	Cache    Invalidator // nil when no cache is configured
	ExamSize int
}

// Mount registers the study API on r.
func Mount(r chi.Router, d Deps) {
	r.Get("/modules/{moduleID}", GetModuleHandler(d.Loader))
	r.Post("/modules/{moduleID}/quiz", CreateQuizHandler(d.Bank, d.Sessions))
	r.Get("/references", ListReferencesHandler(d.Loader))
	r.Get("/documents/*", GetDocumentHandler(d.Source, d.Loader))

	r.Post("/exams", CreateExamHandler(d.Bank, d.Builder, d.Sessions, d.ExamSize))

	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", GetSessionHandler(d.Sessions))
		sr.Delete("/", DeleteSessionHandler(d.Sessions))
		sr.Post("/answers", AnswerHandler(d.Sessions))
	})

	r.Get("/bank/modules", ListBankModulesHandler(d.Bank))
	r.Post("/bank/reload", ReloadBankHandler(d.Loader, d.Bank, d.Cache))
	r.Get("/readyz", ReadyHandler(d.Bank))
}
