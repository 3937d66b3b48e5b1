package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"contentbrief/search"

	"go.uber.org/zap"
)

const internalServerError = "Internal Server Error"

// BriefRunner produces a content brief for a keyword.
type BriefRunner interface {
	Run(ctx context.Context, keyword string) (string, error)
}

type ContentBriefRequest struct {
	Keyword string `json:"keyword"`
}

type ContentBriefResponse struct {
	ContentBrief string `json:"content_brief"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ContentBriefHandler handles POST /generate_content_brief/.
func (s *Server) ContentBriefHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed"})
		return
	}
	defer r.Body.Close()

	var req ContentBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: "missing keyword parameter"})
		return
	}

	logger := loggerFrom(r.Context(), s.logger)
	logger.Info("Received request", zap.String("keyword", req.Keyword))

	brief, err := s.runner.Run(r.Context(), req.Keyword)
	if err != nil {
		status, detail := errorStatus(err, req.Keyword)
		logger.Error("Content brief request failed",
			zap.String("keyword", req.Keyword),
			zap.Int("status_code", status),
			zap.Error(err))
		writeJSON(w, status, ErrorResponse{Detail: detail})
		return
	}

	writeJSON(w, http.StatusOK, ContentBriefResponse{ContentBrief: brief})
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorStatus maps a failed run to a status code and caller-facing detail.
// A search API that answered with an error status is the caller's problem
// (400); everything else is ours (500).
func errorStatus(err error, keyword string) (int, string) {
	var searchErr *search.SearchError
	if errors.As(err, &searchErr) && searchErr.HasStatus() {
		return http.StatusBadRequest, fmt.Sprintf("Error fetching data from SERP API for keyword '%s'", keyword)
	}
	return http.StatusInternalServerError, internalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
