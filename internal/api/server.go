package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pulseline/scribe/internal/entry"
	"github.com/pulseline/scribe/internal/events"
	"github.com/pulseline/scribe/internal/matcher"
	"github.com/pulseline/scribe/internal/store"
)

// Interpreter runs a free-text message through the interpretation pipeline.
type Interpreter interface {
	Interpret(ctx context.Context, message string) entry.Interpretation
}

// EntryStore is the persistence surface the API needs. Nil when the service
// runs without a database; interpretation still works, nothing is written.
type EntryStore interface {
	ListParamTargets(ctx context.Context) ([]matcher.ParamTarget, error)
	GetParamTarget(ctx context.Context, code string) (*matcher.ParamTarget, error)
	UpsertParamTarget(ctx context.Context, t matcher.ParamTarget) error
	WriteEntry(ctx context.Context, row *store.EntryRow) error
}

// Publisher emits events after persistence. Nil disables publishing.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router  *chi.Mux
	port    int
	interp  Interpreter
	matcher *matcher.Matcher
	store   EntryStore
	events  Publisher
	model   string
	logger  *slog.Logger
}

func NewServer(port int, interp Interpreter, m *matcher.Matcher, db EntryStore, events Publisher, model string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		interp:  interp,
		matcher: m,
		store:   db,
		events:  events,
		model:   model,
		logger:  logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/scribe/status", s.status)
	router.Post("/api/v1/interpret", s.interpret)
	router.Get("/api/v1/params/match", s.matchParams)
	router.Get("/api/v1/params", s.listParams)
	router.Put("/api/v1/params/{code}", s.upsertParam)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "scribe",
		"model":   s.model,
		"store":   s.store != nil,
		"events":  s.events != nil,
		"status":  "ready",
	})
}

// InterpretRequest is the POST /api/v1/interpret payload.
type InterpretRequest struct {
	Message string `json:"message"`
	OwnerID string `json:"owner_id,omitempty"`
}

// InterpretResponse wraps the interpretation with persistence metadata.
type InterpretResponse struct {
	entry.Interpretation
	Persisted bool   `json:"persisted"`
	EntryID   string `json:"entry_id,omitempty"`
}

func (s *Server) interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	interp := s.interp.Interpret(r.Context(), req.Message)
	resp := InterpretResponse{Interpretation: interp}

	if interp.Parsed && interp.Entry != nil && s.store != nil && req.OwnerID != "" {
		owner, err := uuid.Parse(req.OwnerID)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid owner_id: %v", err))
			return
		}
		row, err := store.MapEntry(interp.Entry, owner)
		if err != nil {
			// A mapping failure after validation and normalization is a
			// pipeline bug. Surface it, do not degrade it to a note.
			s.logger.Error("entry mapping failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := s.store.WriteEntry(r.Context(), row); err != nil {
			s.logger.Error("entry write failed", "table", row.Table, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to persist entry")
			return
		}
		resp.Persisted = true
		resp.EntryID = row.ID.String()
		s.publishRecorded(row)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) publishRecorded(row *store.EntryRow) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(events.SubjectEntryRecorded, events.EntryRecorded{
		EntryID:    row.ID.String(),
		OwnerID:    row.OwnerID.String(),
		Table:      row.Table,
		EntryType:  string(row.Type),
		Category:   string(row.Category),
		Name:       row.Name,
		Value:      row.Value,
		Unit:       row.Unit,
		RecordedAt: row.Timestamp.UnixMilli(),
	})
	if err != nil {
		s.logger.Warn("failed to publish entry event", "entry_id", row.ID, "error", err)
	}
}

func (s *Server) matchParams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %v", err))
			return
		}
		limit = n
	}

	matches, err := s.matcher.Match(r.Context(), q, limit)
	if err != nil {
		s.logger.Error("param match failed", "error", err)
		writeError(w, http.StatusInternalServerError, "match failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

func (s *Server) listParams(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}
	targets, err := s.store.ListParamTargets(r.Context())
	if err != nil {
		s.logger.Error("param list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"params": targets,
		"count":  len(targets),
	})
}

func (s *Server) upsertParam(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}
	code := strings.ToUpper(chi.URLParam(r, "code"))

	var target matcher.ParamTarget
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	target.Code = code

	if err := s.store.UpsertParamTarget(r.Context(), target); err != nil {
		s.logger.Error("param upsert failed", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "upsert failed")
		return
	}

	// The matcher serves from a TTL cache; drop it so the new target is
	// visible on the next match. Other instances hear about it on the bus.
	s.matcher.Invalidate()
	if s.events != nil {
		if err := s.events.Publish(events.SubjectParamUpdated, events.ParamUpdated{
			Code:      code,
			UpdatedAt: time.Now().UnixMilli(),
		}); err != nil {
			s.logger.Warn("failed to publish param update", "code", code, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"param_code": code, "status": "upserted"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
