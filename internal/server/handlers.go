package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jverhoef/cardrail/pkg/buildinfo"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
	"github.com/jverhoef/cardrail/pkg/pipeline"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// layoutRequest is the POST /v1/layout body: ad-hoc cards laid out without
// touching the configured content source.
type layoutRequest struct {
	Cards         []content.Record `json:"cards"`
	ViewportWidth float64          `json:"viewport_width"`
}

func (s *Server) handleLayoutPost(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout request"))
		return
	}
	if len(req.Cards) == 0 {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "cards are required"))
		return
	}

	content.SortSandwich(req.Cards)
	cards := content.Cards(req.Cards, s.logger)
	l, err := s.runner.ComputeLayout(r.Context(), cards, s.pipelineOpts(req.ViewportWidth, 0))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleLayoutGet(w http.ResponseWriter, r *http.Request) {
	viewport, err := parseFloat(chi.URLParam(r, "viewportWidth"), "viewportWidth")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.pipelineOpts(viewport, 0)
	records, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), content.Cards(records, s.logger), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	progress, err := queryFloat(r, "progress", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	viewport, err := queryFloat(r, "viewport", s.cfg.Wall.DefaultViewportWidth)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.pipelineOpts(viewport, progress)
	if err := opts.ValidateForSnapshot(); err != nil {
		s.respondError(w, r, err)
		return
	}
	records, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	cards := content.Cards(records, s.logger)
	l, err := s.runner.ComputeLayout(r.Context(), cards, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pipeline.BuildSnapshot(records, cards, l, opts))
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	viewport, err := queryFloat(r, "viewport", s.cfg.Wall.DefaultViewportWidth)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	height, err := queryFloat(r, "height", s.cfg.Server.ScrollableHeight)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.pipelineOpts(viewport, 0)
	records, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), content.Cards(records, s.logger), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, found := l.AnchorFor(category); !found && category != scroll.CategoryAll {
		s.respondError(w, r, errors.New(errors.ErrCodeCategoryNotFound, "no anchor for category %q", category))
		return
	}

	// ok=false here means there is no overflow to scroll; the inert zero
	// jump is the correct answer, not an error.
	spy := scroll.NewSpy(l, opts.Phases, s.logger)
	jump, ok := spy.JumpTo(category, height)
	if !ok {
		jump = scroll.Jump{Category: category}
	}
	respondJSON(w, http.StatusOK, jump)
}

func (s *Server) pipelineOpts(viewport, progress float64) pipeline.Options {
	return pipeline.Options{
		Source:        s.source,
		ViewportWidth: viewport,
		Progress:      progress,
		Phases:        s.cfg.Phases,
		BookendScale:  s.cfg.Wall.BookendScale,
		Logger:        s.logger,
	}
}

func parseFloat(raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return parseFloat(raw, name)
}
