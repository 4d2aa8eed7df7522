package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/exam"
	"github.com/mind-engage/imuno/internal/session"
)

// POST /modules/{moduleID}/quiz
func CreateQuizHandler(repo *bank.Repository, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID := strings.TrimSpace(chi.URLParam(r, "moduleID"))
		if moduleID == "" {
			http.Error(w, "moduleID required", http.StatusBadRequest)
			return
		}
		quiz := exam.ModuleQuiz(repo, moduleID)
		s, err := sessions.Create(session.KindQuiz, []string{moduleID}, quiz.Questions)
		if err != nil {
			config.WithContext(r.Context()).WithError(err).Error("create quiz session")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		config.JSON(w, http.StatusCreated, toSessionView(s))
	}
}

const (
	maxBodyBytes = 64 << 10
	maxExamSize  = 100
)

type createExamReq struct {
	Modules []bank.ID `json:"modules"`
	Size    int       `json:"size,omitempty"`
}

// POST /exams
func CreateExamHandler(repo *bank.Repository, builder *exam.Builder, sessions session.Store, defaultSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		var req createExamReq
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDecodeError(w, err)
			return
		}
		if req.Size > maxExamSize {
			http.Error(w, fmt.Sprintf("size must be at most %d", maxExamSize), http.StatusBadRequest)
			return
		}
		size := req.Size
		if size <= 0 {
			size = defaultSize
		}
		sel := make(exam.Selection, 0, len(req.Modules))
		for _, m := range req.Modules {
			sel = append(sel, string(m))
		}

		ex, err := builder.Build(sel, repo, size)
		if errors.Is(err, exam.ErrEmptySelection) {
			http.Error(w, "select at least one module to generate the exam", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.WithError(err).Error("build exam")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if len(ex.Questions) == 0 {
			log.WithField("modules", ex.Modules).Warn("exam selection has no questions")
		}

		s, err := sessions.Create(session.KindExam, ex.Modules, ex.Questions)
		if err != nil {
			log.WithError(err).Error("create exam session")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		config.JSON(w, http.StatusCreated, toSessionView(s))
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := sessions.Get(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		config.JSON(w, http.StatusOK, toSessionView(s))
	}
}

// DELETE /sessions/{sessionID}
func DeleteSessionHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
}
