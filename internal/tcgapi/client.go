// Package tcgapi is a small client for the Pokémon TCG card-metadata API
// (https://pokemontcg.io). It rate-limits and retries requests, caches results
// in memory, and degrades to name heuristics when the API is unreachable, so
// analysis keeps working offline.
package tcgapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pokelog/go-tcg-metrics/internal/classifier"
)

const (
	// DefaultBaseURL is the public v2 endpoint.
	DefaultBaseURL = "https://api.pokemontcg.io/v2"

	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 15 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 8 * time.Second

	// batchSize bounds how many names LookupAll resolves before pausing.
	batchSize  = 5
	batchPause = 200 * time.Millisecond
)

// CardInfo is the resolved metadata for one card name.
type CardInfo struct {
	Name            string
	Supertype       string // "Pokémon", "Trainer", "Energy" or "Unknown"
	TrainerCategory string // "Item", "Supporter", "Stadium", "Pokémon Tool", "ACE SPEC"
	PokemonType     string // first listed elemental type, "Colorless" when absent
	EnergyType      string
	Subtype         string
	FromAPI         bool // false when filled in by the name heuristics
}

func (c CardInfo) IsPokemon() bool { return c.Supertype == "Pokémon" }
func (c CardInfo) IsTrainer() bool { return c.Supertype == "Trainer" }
func (c CardInfo) IsEnergy() bool  { return c.Supertype == "Energy" }

// apiCard mirrors the fields we consume from the v2 card payload.
type apiCard struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Supertype string   `json:"supertype"`
	Subtypes  []string `json:"subtypes"`
	Types     []string `json:"types"`
}

type searchResponse struct {
	Data []apiCard `json:"data"`
}

// Client looks up card metadata with rate limiting, retries and caching.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]CardInfo
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIKey sets the X-Api-Key header for higher rate limits.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a Client against the public API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		cache:       make(map[string]CardInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	reRankSuffix  = regexp.MustCompile(`(?i)\s+(ex|gx|v|vmax|vstar)$`)
	reTrailingNum = regexp.MustCompile(`\s+\d+$`)
	reNonWord     = regexp.MustCompile(`[^\w\s-]`)
	reSpaceRuns   = regexp.MustCompile(`\s+`)
)

// cacheKey normalizes a name for cache lookups so code-suffixed and plain
// spellings of the same card share an entry.
func cacheKey(name string) string {
	s := strings.ToLower(name)
	s = reNonWord.ReplaceAllString(s, "")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// GetCardInfo resolves metadata for one card name. It never returns an error:
// API failures fall back to heuristics, and every result is cached.
func (c *Client) GetCardInfo(ctx context.Context, name string) CardInfo {
	key := cacheKey(name)
	c.mu.Lock()
	if info, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return info
	}
	c.mu.Unlock()

	info, err := c.search(ctx, name)
	if err != nil {
		// Retry once with rank suffixes and trailing numbers stripped; the
		// transcript form often differs from the card's printed name.
		stripped := strings.TrimSpace(reTrailingNum.ReplaceAllString(reRankSuffix.ReplaceAllString(name, ""), ""))
		if stripped != "" && stripped != name {
			info, err = c.search(ctx, stripped)
		}
	}
	if err != nil {
		info = Fallback(name)
	}
	info.Name = name

	c.mu.Lock()
	c.cache[key] = info
	c.mu.Unlock()
	return info
}

// LookupAll resolves a set of names in small batches, pausing between batches
// so bulk analysis stays well inside the API's rate limits.
func (c *Client) LookupAll(ctx context.Context, names []string) map[string]CardInfo {
	results := make(map[string]CardInfo, len(names))
	for i, name := range names {
		if i > 0 && i%batchSize == 0 {
			select {
			case <-time.After(batchPause):
			case <-ctx.Done():
				// Heuristics for whatever is left.
				for _, rest := range names[i:] {
					results[rest] = Fallback(rest)
				}
				return results
			}
		}
		results[name] = c.GetCardInfo(ctx, name)
	}
	return results
}

// CacheSize reports how many names have been resolved so far.
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Client) search(ctx context.Context, name string) (CardInfo, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name:%q", name))
	q.Set("pageSize", "1")
	endpoint := fmt.Sprintf("%s/cards?%s", c.baseURL, q.Encode())

	var resp searchResponse
	if err := c.doRequest(ctx, endpoint, &resp); err != nil {
		return CardInfo{}, err
	}
	if len(resp.Data) == 0 {
		return CardInfo{}, fmt.Errorf("no card found for %q", name)
	}
	return fromAPICard(resp.Data[0]), nil
}

func fromAPICard(card apiCard) CardInfo {
	info := CardInfo{
		Name:      card.Name,
		Supertype: card.Supertype,
		FromAPI:   true,
	}
	switch card.Supertype {
	case "Pokémon":
		info.PokemonType = "Colorless"
		if len(card.Types) > 0 {
			info.PokemonType = card.Types[0]
		}
		if len(card.Subtypes) > 0 {
			info.Subtype = card.Subtypes[0]
		}
	case "Trainer":
		if len(card.Subtypes) > 0 {
			switch sub := card.Subtypes[0]; sub {
			case "Item", "Supporter", "Stadium", "Pokémon Tool", "ACE SPEC":
				info.TrainerCategory = sub
			}
		}
	case "Energy":
		info.EnergyType = "Basic"
		if len(card.Subtypes) > 0 {
			info.EnergyType = card.Subtypes[0]
		}
	}
	return info
}

// doRequest performs a GET with rate limiting and retry on transient failures.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("api status %d", resp.StatusCode)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		default:
			return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Fallback infers card metadata from the name alone, used when the API cannot
// resolve a card.
func Fallback(name string) CardInfo {
	info := CardInfo{Name: name, Supertype: "Unknown"}
	switch classifier.Guess(name) {
	case classifier.Trainer:
		info.Supertype = "Trainer"
		info.TrainerCategory = classifier.TrainerCategory(name)
	case classifier.Energy:
		info.Supertype = "Energy"
		info.EnergyType = "Basic"
	}
	return info
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
