// Package api exposes stored matches and aggregate statistics over a small
// JSON REST surface.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pokelog/go-tcg-metrics/internal/aggregator"
	"github.com/pokelog/go-tcg-metrics/internal/analyzer"
	"github.com/pokelog/go-tcg-metrics/internal/storage"
)

// Server holds the handler dependencies.
type Server struct {
	db  *storage.DB
	agg *aggregator.Aggregator
	ana *analyzer.Analyzer
}

// NewServer wires a Server over the given store, aggregator and analyzer.
func NewServer(db *storage.DB, agg *aggregator.Aggregator, ana *analyzer.Analyzer) *Server {
	return &Server{db: db, agg: agg, ana: ana}
}

// Router builds the API router.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/matches", s.listMatches).Methods("GET")
	v1.HandleFunc("/matches/{id}", s.getMatch).Methods("GET")
	v1.HandleFunc("/stats", s.getStats).Methods("GET")
	v1.HandleFunc("/cards/effectiveness", s.getCardEffectiveness).Methods("GET")
	v1.HandleFunc("/cards/composition", s.getComposition).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return r
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.db.ListMatches()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The raw transcript can run to thousands of lines; the list view
	// doesn't need it.
	for i := range matches {
		matches[i].RawLog = ""
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	match, err := s.db.GetMatchByPrefix(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if match == nil {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	matches, err := s.db.GetAllMatches()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.agg.Aggregate(matches))
}

func (s *Server) getCardEffectiveness(w http.ResponseWriter, r *http.Request) {
	matches, err := s.db.GetAllMatches()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := s.ana.AnalyzeCardEffectiveness(r.Context(), matches)
	writeJSON(w, http.StatusOK, map[string]any{
		"cards":           stats,
		"recommendations": analyzer.Recommendations(stats),
	})
}

func (s *Server) getComposition(w http.ResponseWriter, r *http.Request) {
	matches, err := s.db.GetAllMatches()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.ana.AnalyzeDeckComposition(r.Context(), matches))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
