package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/grading"
	"github.com/mind-engage/imuno/internal/session"
)

type answerReq struct {
	QuestionID string `json:"question_id"`
	Letter     string `json:"letter"`
}

// POST /sessions/{sessionID}/answers
func AnswerHandler(sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))
		var req answerReq
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDecodeError(w, err)
			return
		}
		if req.QuestionID == "" || req.Letter == "" {
			http.Error(w, "question_id and letter required", http.StatusBadRequest)
			return
		}

		res, q, err := sessions.Answer(sessionID, req.QuestionID, req.Letter)
		var invalid *grading.InvalidOptionError
		switch {
		case err == nil:
			config.JSON(w, http.StatusOK, toAnswerView(res, q))
		case errors.Is(err, session.ErrLocked):
			config.JSON(w, http.StatusConflict, map[string]interface{}{
				"error":  err.Error(),
				"answer": toAnswerView(res, q),
			})
		case errors.As(err, &invalid):
			config.WithContext(r.Context()).WithError(err).Warn("answer with unknown option")
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrQuestionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			config.WithContext(r.Context()).WithError(err).Error("grade answer")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
