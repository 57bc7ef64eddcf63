package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Clark-Hu/catalog-engine/internal/batchio"
	"github.com/Clark-Hu/catalog-engine/internal/engine"
	"github.com/Clark-Hu/catalog-engine/internal/repository"
)

var batchNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type batchResponse struct {
	Name      string     `json:"name"`
	Actions   int        `json:"actions"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type batchListResponse struct {
	Items []batchResponse `json:"items"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeInput(w, r)
	if err != nil {
		s.respondDecodeError(w, err)
		return
	}
	s.evaluate(w, "", in)
}

func (s *Server) handlePutBatch(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}
	name, err := decodeNameParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	in, err := s.decodeInput(w, r)
	if err != nil {
		s.respondDecodeError(w, err)
		return
	}
	// Reject documents that would not evaluate, such as duplicate titles.
	if _, _, err := in.Build(); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := s.batches.Save(r.Context(), name, in); err != nil {
		s.logger.Error().Err(err).Str("batch", name).Msg("save batch failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store batch")
		return
	}
	s.respondJSON(w, http.StatusOK, batchResponse{Name: name, Actions: len(in.Actions)})
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.batches.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list batches failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list batches")
		return
	}
	items := make([]batchResponse, 0, len(summaries))
	for _, sum := range summaries {
		created, updated := sum.CreatedAt, sum.UpdatedAt
		items = append(items, batchResponse{
			Name:      sum.Name,
			Actions:   sum.Actions,
			CreatedAt: &created,
			UpdatedAt: &updated,
		})
	}
	s.respondJSON(w, http.StatusOK, batchListResponse{Items: items})
}

func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	name, err := decodeNameParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	in, err := s.batches.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Str("batch", name).Msg("load batch failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load batch")
		return
	}
	s.evaluate(w, name, in)
}

func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}
	name, err := decodeNameParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if err := s.batches.Delete(r.Context(), name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Error().Err(err).Str("batch", name).Msg("delete batch failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete batch")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// evaluate builds a fresh catalog from in, runs its actions and writes the
// result records. Every call evaluates against its own catalog.
func (s *Server) evaluate(w http.ResponseWriter, batch string, in batchio.Input) {
	cat, actions, err := in.Build()
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	runID := uuid.NewString()
	logger := s.logger.With().Str("run_id", runID).Str("batch", batch).Logger()
	results := engine.New(cat, logger).Run(actions)

	w.Header().Set("X-Run-Id", runID)
	s.respondJSON(w, http.StatusOK, batchio.Records(results))
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (batchio.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBatchBytes)
	defer r.Body.Close()
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return batchio.Input{}, err
	}
	return batchio.Decode(bytes.NewReader(payload))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.respondError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, batchio.ErrInvalidInput):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Unable to parse request body")
	}
}

func decodeNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if name == "" {
		return "", fmt.Errorf("missing batch name")
	}
	if !batchNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid batch name")
	}
	return name, nil
}

func (s *Server) verifyBearer(header string) bool {
	if header == "" || s.cfg.AuthToken == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token == s.cfg.AuthToken
}
