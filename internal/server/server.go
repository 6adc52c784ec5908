// Package server exposes the reconciled calendar over HTTP for
// programmatic consumers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amslee/postcal/internal/exporter"
	"github.com/amslee/postcal/internal/feeds"
	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/planner"
	"github.com/amslee/postcal/internal/reconcile"
	"github.com/amslee/postcal/internal/selection"
	"github.com/amslee/postcal/internal/storage"
	"github.com/amslee/postcal/internal/validation"
)

type Server struct {
	store storage.Provider
	feeds *feeds.Set
	sel   *selection.State
	plat  planner.PlatformPolicy
}

func New(store storage.Provider, set *feeds.Set, sel *selection.State, plat planner.PlatformPolicy) *Server {
	return &Server{store: store, feeds: set, sel: sel, plat: plat}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/month/{year}/{month}", s.handleMonth)
		r.Get("/week/{date}", s.handleWeek)
		r.Get("/day/{date}", s.handleDay)

		r.Get("/posts", s.handleListPosts)
		r.Post("/posts", s.handleCreatePost)
		r.Put("/posts/{id}", s.handleUpdatePost)
		r.Delete("/posts/{id}", s.handleDeletePost)
		r.Post("/posts/{id}/move", s.handleMovePost)

		r.Post("/autopopulate", s.handleAutoPopulate)
		r.Get("/export.ics", s.handleExportICS)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid year"))
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid month"))
		return
	}

	view, err := reconcile.Month(year, time.Month(monthNum), s.store, s.feeds, s.sel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	days, err := reconcile.Week(chi.URLParam(r, "date"), s.store, s.feeds, s.sel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := validation.ValidateDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := reconcile.Day(date, s.store, s.feeds, s.sel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("date"); date != "" {
		posts, err := s.store.PostsForDate(date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
		return
	}

	posts, err := s.store.AllPosts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validation.ValidatePost(post); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	post.ID = "" // IDs are always store-assigned
	created, err := s.store.AddPost(post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var post models.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if post.Date != "" {
		if err := validation.ValidatePost(post); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	updated, err := s.store.UpdatePost(chi.URLParam(r, "id"), post)
	if errors.Is(err, storage.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.DeletePost(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, storage.ErrPostNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMovePost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validation.ValidateDate(body.Date); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	moved, err := s.store.MovePost(chi.URLParam(r, "id"), body.Date)
	if errors.Is(err, storage.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, moved)
}

func (s *Server) handleAutoPopulate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Year          int    `json:"year"`
		Month         int    `json:"month"`
		PostsPerWeek  int    `json:"posts_per_week"`
		TotalPosts    int    `json:"total_posts"`
		AllowWeekends bool   `json:"allow_weekends"`
		Distribution  string `json:"distribution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Month < 1 || body.Month > 12 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid month"))
		return
	}
	switch planner.Distribution(body.Distribution) {
	case "", planner.DistributionEven, planner.DistributionFrontLoaded, planner.DistributionBackLoaded:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid distribution %q", body.Distribution))
		return
	}

	posts, err := planner.Apply(s.store, planner.Options{
		Year:          body.Year,
		Month:         time.Month(body.Month),
		PostsPerWeek:  body.PostsPerWeek,
		TotalPosts:    body.TotalPosts,
		AllowWeekends: body.AllowWeekends,
		Distribution:  planner.Distribution(body.Distribution),
		Platform:      s.plat,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.AllPosts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=postcal.ics")
	_ = exporter.WriteICS(w, "Content Calendar", posts)
}
