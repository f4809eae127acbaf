package tcgapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetCardInfoFromAPI(t *testing.T) {
	var requests atomic.Int64
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"data":[{"id":"sv1-196","name":"Ultra Ball","supertype":"Trainer","subtypes":["Item"]}]}`)
	})
	c := NewClient(WithBaseURL(srv.URL))

	info := c.GetCardInfo(context.Background(), "Ultra Ball")
	if !info.FromAPI {
		t.Fatal("expected API-sourced metadata")
	}
	if info.Supertype != "Trainer" || info.TrainerCategory != "Item" {
		t.Errorf("info = %+v", info)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestGetCardInfoCacheHit(t *testing.T) {
	var requests atomic.Int64
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"data":[{"name":"Ultra Ball","supertype":"Trainer","subtypes":["Item"]}]}`)
	})
	c := NewClient(WithBaseURL(srv.URL))

	c.GetCardInfo(context.Background(), "Ultra Ball")
	// Same card, different spelling: the normalized cache key must match.
	c.GetCardInfo(context.Background(), "ULTRA  BALL")
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1 (second lookup should hit the cache)", got)
	}
	if c.CacheSize() != 1 {
		t.Errorf("cache size = %d, want 1", c.CacheSize())
	}
}

func TestGetCardInfoStripsRankSuffix(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "ex") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"data":[{"name":"Gholdengo","supertype":"Pokémon","subtypes":["Stage 1"],"types":["Metal"]}]}`)
	})
	c := NewClient(WithBaseURL(srv.URL))

	info := c.GetCardInfo(context.Background(), "Gholdengo ex")
	if !info.FromAPI {
		t.Fatal("expected a hit on the suffix-stripped retry")
	}
	if info.PokemonType != "Metal" || info.Subtype != "Stage 1" {
		t.Errorf("info = %+v", info)
	}
	// The caller's name is kept, not the API's.
	if info.Name != "Gholdengo ex" {
		t.Errorf("name = %q, want Gholdengo ex", info.Name)
	}
}

func TestGetCardInfoFallsBackOnMiss(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})
	c := NewClient(WithBaseURL(srv.URL))

	info := c.GetCardInfo(context.Background(), "Mist Energy")
	if info.FromAPI {
		t.Fatal("expected heuristic fallback")
	}
	if info.Supertype != "Energy" {
		t.Errorf("supertype = %q, want Energy", info.Supertype)
	}
}

func TestGetCardInfoFallsBackOnError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	c := NewClient(WithBaseURL(srv.URL))

	info := c.GetCardInfo(context.Background(), "Professor Oak")
	if info.FromAPI {
		t.Fatal("expected heuristic fallback")
	}
	if info.Supertype != "Trainer" || info.TrainerCategory != "Supporter" {
		t.Errorf("info = %+v", info)
	}
}

func TestLookupAll(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"Ultra Ball","supertype":"Trainer","subtypes":["Item"]}]}`)
	})
	c := NewClient(WithBaseURL(srv.URL))

	names := []string{"Ultra Ball", "Nest Ball", "Switch"}
	results := c.LookupAll(context.Background(), names)
	if len(results) != len(names) {
		t.Fatalf("results = %d, want %d", len(results), len(names))
	}
	for _, name := range names {
		if _, ok := results[name]; !ok {
			t.Errorf("missing result for %q", name)
		}
	}
}

func TestLookupAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBaseURL("http://127.0.0.1:0"))
	results := c.LookupAll(ctx, []string{"Nest Ball", "Jet Energy"})
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for name, info := range results {
		if info.FromAPI {
			t.Errorf("%q should have fallen back to heuristics", name)
		}
	}
}

func TestFallback(t *testing.T) {
	cases := []struct {
		name      string
		supertype string
	}{
		{"Nest Ball", "Trainer"},
		{"Basic Darkness Energy", "Energy"},
		{"Pikachu", "Unknown"},
	}
	for _, c := range cases {
		if got := Fallback(c.name); got.Supertype != c.supertype {
			t.Errorf("Fallback(%q).Supertype = %q, want %q", c.name, got.Supertype, c.supertype)
		}
	}
}
