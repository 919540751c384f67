package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/server/middleware"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/weights"
)

const (
	maxBodyBytes    = 1 << 20
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// MatchResponse is the response for /match
type MatchResponse struct {
	*types.MatchResult
	Saved bool `json:"saved"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProfiles lists the explicit weight modes and the adaptive profiles
func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.ProfilesResponse{
		Modes:    weights.ExplicitProfiles(),
		Adaptive: weights.Profiles(),
	})
}

// handleSelectWeights runs the adaptive selector on a job description
func (s *Server) handleSelectWeights(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}

	selection := s.cfg.Selector.Select(req.Text)
	s.jsonResponse(w, http.StatusOK, types.SelectionResponse{
		Profile:   selection.Profile,
		Analysis:  selection.Analysis,
		Reasoning: selection.Reasoning,
	})
}

// handleExtract returns the skills and entities found in arbitrary text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}

	resp := types.ExtractionResponse{Skills: s.cfg.Skills.Extract(req.Text)}
	bundle, err := s.cfg.Extractor.Extract(r.Context(), req.Text)
	if err != nil {
		log.Printf("[MATCH] Warning: entity extraction failed: %v", err)
		resp.Warnings = append(resp.Warnings, "entity extraction failed: "+err.Error())
		bundle = types.EmptyEntityBundle()
	}
	resp.Entities = bundle

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMatch ranks the corpus against a job description
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}

	query, err := s.jobText(r.Context(), &req)
	if err != nil {
		s.failure(w, err)
		return
	}

	result, err := s.cfg.Matcher.Match(r.Context(), query, s.matchOptions(&req, nil))
	if err != nil {
		s.failure(w, err)
		return
	}

	saved := s.saveRun(r, &req, query, result)
	s.jsonResponse(w, http.StatusOK, MatchResponse{MatchResult: result, Saved: saved})
}

// handleMatchStream ranks the corpus and streams progress via SSE
func (s *Server) handleMatchStream(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	query, err := s.jobText(r.Context(), &req)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	opts := s.matchOptions(&req, func(event matching.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	result, err := s.cfg.Matcher.Match(r.Context(), query, opts)
	if err != nil {
		log.Printf("[MATCH] Streaming match failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	saved := s.saveRun(r, &req, query, result)
	if err := sse.WriteEvent("result", MatchResponse{MatchResult: result, Saved: saved}); err != nil {
		log.Printf("Error writing SSE event: %v", err)
		return
	}
	sse.WriteComplete(result.RunID, "completed")
}

// handleListRuns lists recent saved runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Runs == nil {
		s.failure(w, &ErrNotConfigured{Feature: "run persistence"})
		return
	}

	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunLimit {
			s.failure(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 200"})
			return
		}
		limit = n
	}

	runs, err := s.cfg.Runs.ListMatchRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns a saved run with its ranked results
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	run, err := s.cfg.Runs.GetMatchRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleDeleteRun deletes a saved run
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runID(w, r)
	if !ok {
		return
	}

	if err := s.cfg.Runs.DeleteMatchRun(r.Context(), runID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runID parses the {id} path value. It writes the error response itself.
func (s *Server) runID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.cfg.Runs == nil {
		s.failure(w, &ErrNotConfigured{Feature: "run persistence"})
		return uuid.Nil, false
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

// decode reads a JSON body of at most maxBodyBytes and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req interface{ Validate() error }) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// jobText returns the job description carried by req, fetching it when a URL is given.
func (s *Server) jobText(ctx context.Context, req *types.MatchRequest) (string, error) {
	if req.URL == "" {
		jd, err := ingestion.LoadText(req.Text)
		if err != nil {
			return "", err
		}
		return jd.Text, nil
	}
	if s.cfg.Loader == nil {
		return "", &ErrNotConfigured{Feature: "job description by URL"}
	}
	jd, err := s.cfg.Loader.LoadURL(ctx, req.URL)
	if err != nil {
		return "", err
	}
	return jd.Text, nil
}

func (s *Server) matchOptions(req *types.MatchRequest, onProgress matching.ProgressCallback) matching.Options {
	mode := s.cfg.DefaultMode
	switch {
	case req.Mode != "":
		mode = weights.ParseMode(req.Mode)
	case req.Weights != nil:
		mode = weights.ModeCustom
	}
	topK := s.cfg.DefaultTopK
	if req.TopK > 0 {
		topK = req.TopK
	}

	opts := matching.Options{
		Mode:       mode,
		TopK:       topK,
		Workers:    s.cfg.Workers,
		OnProgress: onProgress,
	}
	if req.Weights != nil {
		opts.Custom = &matching.CustomWeights{
			Embedding: req.Weights.Embedding,
			Skill:     req.Weights.Skill,
			NER:       req.Weights.NER,
		}
	}
	return opts
}

// saveRun persists the run when asked to and a store is configured. Failures are logged only.
func (s *Server) saveRun(r *http.Request, req *types.MatchRequest, query string, result *types.MatchResult) bool {
	if !req.Save || s.cfg.Runs == nil {
		return false
	}
	if subject, err := middleware.GetSubject(r); err == nil {
		log.Printf("[MATCH] Saving run %s for %s", result.RunID, subject)
	}
	if _, err := s.cfg.Runs.SaveMatchRun(r.Context(), query, result); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[MATCH] Warning: failed to save run %s: %v", result.RunID, err)
		}
		return false
	}
	return true
}
