package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/csvprofile/internal/core"
	"github.com/JonMunkholm/csvprofile/internal/logging"
	"github.com/JonMunkholm/csvprofile/internal/web/templates"
	"github.com/a-h/templ"
)

// maxRequestBody caps JSON request bodies; they only carry a path.
const maxRequestBody = 64 << 10

// ProfileRequest is the JSON body accepted by POST /api/profile.
type ProfileRequest struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// AuditResponse wraps the recent audit entries.
type AuditResponse struct {
	Entries []core.AuditEntry `json:"entries"`
	Limit   int               `json:"limit"`
}

// handleIndex renders the file path form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(templates.Index("", nil)).ServeHTTP(w, r)
}

// handleAnalyze profiles the file named by the file_path form field and
// renders the results page.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidBody, err), http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	report, err := s.service.Profile(ctx, r.PostForm.Get("file_path"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	templ.Handler(templates.Results(report)).ServeHTTP(w, r)
}

// handleProfile serves GET /api/profile?path=...&format=json|yaml|text.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.profileAndRender(w, r, q.Get("path"), q.Get("format"))
}

// handleProfileJSON serves POST /api/profile with a ProfileRequest body.
// A format query parameter overrides the body's.
func (s *Server) handleProfileJSON(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidBody, err), http.StatusBadRequest)
		return
	}

	format := req.Format
	if f := r.URL.Query().Get("format"); f != "" {
		format = f
	}
	s.profileAndRender(w, r, req.Path, format)
}

func (s *Server) profileAndRender(w http.ResponseWriter, r *http.Request, path, formatName string) {
	// Reject a bad format before spending a profiling slot on the file.
	format, err := core.ParseFormat(formatName, core.FormatJSON)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	report, err := s.service.Profile(ctx, path)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if err := report.Render(w, format); err != nil {
		logging.FromContext(r.Context()).Error("render report", "format", format, "error", err)
	}
}

// handleStatus reports profiling slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}

// handleAudit lists recent profile requests, newest first.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", core.DefaultAuditLimit)
	if limit > core.MaxAuditLimit {
		limit = core.MaxAuditLimit
	}

	entries, err := s.service.RecentProfiles(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, AuditResponse{Entries: entries, Limit: limit})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
