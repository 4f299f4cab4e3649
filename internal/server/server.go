// Package server exposes the classifier and the matcher over JSON HTTP.
// It keeps no per-user state; callers send their waste list with each match.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/waste"
)

const maxBodySize = 64 << 10

type Server struct {
	classifier ai.Classifier
	matcher    *matching.Matcher
	logger     *zap.Logger
}

func New(classifier ai.Classifier, matcher *matching.Matcher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{classifier: classifier, matcher: matcher, logger: log}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestSize(maxBodySize))

	r.Get("/healthz", s.health)
	r.Get("/categories", s.categories)
	r.Get("/companies", s.companies)
	r.Get("/companies/{id}/explain", s.explain)
	r.Post("/classify", s.classify)
	r.Post("/match", s.match)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	categories := waste.Categories()
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{Key: c.Key, Name: c.Name, Tags: c.Tags()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) companies(w http.ResponseWriter, _ *http.Request) {
	companies := s.matcher.Directory().Companies()
	resp := make([]companyResponse, len(companies))
	for i, c := range companies {
		resp[i] = toCompany(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tags, err := s.classifier.Classify(r.Context(), req.Bio)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{Waste: tags})
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	userWaste, err := waste.ParseSet(req.Waste)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var q matching.Query
	q.Search = req.Search
	if strings.TrimSpace(req.Category) != "" {
		category, ok := waste.CategoryByKey(req.Category)
		if !ok {
			s.writeError(w, r, fmt.Errorf("%w: %q", errUnknownCategory, req.Category))
			return
		}
		q.Category = category
	}

	writeJSON(w, http.StatusOK, toMatch(s.matcher.Match(userWaste, q)))
}

// explain takes the user's waste as repeated "waste" query parameters.
func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: company id must be a uuid", ai.ErrValidation))
		return
	}

	company := s.matcher.Directory().FindByID(id)
	if company == nil {
		s.writeError(w, r, fmt.Errorf("%w: %s", errUnknownCompany, id))
		return
	}

	userWaste, err := waste.ParseSet(r.URL.Query()["waste"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, explainResponse{
		Company: toCompany(company),
		Shared:  matching.Explain(company, userWaste),
	})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ai.ErrValidation, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

