package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/store"
)

// Analyzer runs one credibility analysis
type Analyzer interface {
	Analyze(ctx context.Context, rawInput string, declaredType model.InputType, requesterID string) (*model.CredibilityVerdict, error)
}

// Server is the JSON API surface over the analysis pipeline
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	store      store.Store
	maxBody    int64
}

// New creates the API server
func New(cfg model.ServerConfig, analyzer Analyzer, st store.Store) *Server {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	s := &Server{
		analyzer: analyzer,
		store:    st,
		maxBody:  maxBody,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/analyses", s.handleListAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", s.handleGetAnalysis).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks serving the API
func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type analyzeRequest struct {
	Content     string `json:"content"`
	Type        string `json:"type"`
	RequesterID string `json:"requester_id"`
}

// apiError is the structured failure shape
type apiError struct {
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid JSON body: "+err.Error())
		return
	}

	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "", "content is required")
		return
	}

	declared := model.InputType(req.Type)
	switch declared {
	case "", model.InputTypeAuto:
		declared = model.InputTypeAuto
	case model.InputTypeText, model.InputTypeURL, model.InputTypeSocialPost:
	default:
		writeError(w, http.StatusBadRequest, "",
			"type must be one of: text, url, social_post, auto")
		return
	}

	verdict, err := s.analyzer.Analyze(r.Context(), req.Content, declared, req.RequesterID)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientContent) {
			writeError(w, http.StatusUnprocessableEntity,
				"content_extraction", model.ErrInsufficientContent.Error())
			return
		}
		log.Printf("analyze: %v", err)
		writeError(w, http.StatusInternalServerError, "", "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	verdict, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "", "analysis not found")
			return
		}
		log.Printf("get analysis %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "", "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	requesterID := r.URL.Query().Get("requester_id")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	records, err := s.store.List(r.Context(), requesterID, limit)
	if err != nil {
		log.Printf("list analyses: %v", err)
		writeError(w, http.StatusInternalServerError, "", "listing failed")
		return
	}
	if records == nil {
		records = []store.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": records})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, stage, message string) {
	writeJSON(w, status, map[string]apiError{
		"error": {Stage: stage, Message: message},
	})
}
