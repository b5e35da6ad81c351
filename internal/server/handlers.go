package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kvega/kayfabe/internal/quizgen"
)

type questionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	CorrectFull string   `json:"correct_answer_full"`
}

type errorResponse struct {
	Error      string `json:"error"`
	RawContent string `json:"raw_content,omitempty"`
}

type answerRequest struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type answerResponse struct {
	Correct bool `json:"correct"`
}

// handleQuestion generates a fresh question for the caller's session.
// Parse failures return 200 with the raw model output so the client can
// display it; provider failures return 502.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	difficulty, err := quizgen.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sess := s.session(w, r)

	s.mu.Lock()
	recent := sess.Recent.Items()
	s.mu.Unlock()

	q, err := s.generate(r.Context(), difficulty, recent)
	if err != nil {
		var parseErr *quizgen.ParseError
		if errors.As(err, &parseErr) {
			writeJSON(w, http.StatusOK, errorResponse{
				Error:      parseErr.Error(),
				RawContent: parseErr.Raw,
			})
			return
		}
		s.logger.Error().Err(err).Msg("question generation failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	sess.Recent.Add(q.Text)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, questionResponse{
		Question:    q.Text,
		Options:     q.OptionStrings(),
		Answer:      q.Answer,
		CorrectFull: q.CorrectFull,
	})
}

// handleAnswer grades a submission. The check is stateless: the client
// sends back the correct letter it was handed with the question.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	if req.UserAnswer == "" || req.CorrectAnswer == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_answer and correct_answer are required"})
		return
	}

	correct := strings.EqualFold(
		strings.TrimSpace(req.UserAnswer),
		strings.TrimSpace(req.CorrectAnswer),
	)
	writeJSON(w, http.StatusOK, answerResponse{Correct: correct})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
