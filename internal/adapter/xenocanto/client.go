// Package xenocanto fetches recordings from the xeno-canto v3 API.
package xenocanto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/metrics"
	"birdcall-quiz/internal/ratelimit"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxBodyBytes = 8 << 20

type Config struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

// Client implements domain.RecordingSource. Every network call goes through
// the shared limiter.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	metrics    *metrics.QuizMetrics
	group      singleflight.Group
}

// NewClient creates a xeno-canto client. httpClient may be nil.
func NewClient(cfg Config, limiter *ratelimit.Limiter, httpClient *http.Client, m *metrics.QuizMetrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    m,
	}
}

func (c *Client) Name() string { return domain.SourceXenoCanto }

// APIKeyConfigured reports whether requests can be made at all.
func (c *Client) APIKeyConfigured() bool { return c.cfg.APIKey != "" }

type apiResponse struct {
	Recordings []apiRecording  `json:"recordings"`
	Error      json.RawMessage `json:"error"`
	Message    string          `json:"message"`
}

type apiRecording struct {
	ID       flexString `json:"id"`
	File     string     `json:"file"`
	Location string     `json:"loc"`
	Type     string     `json:"type"`
	Quality  string     `json:"q"`
	Recorder string     `json:"rec"`
	Country  string     `json:"cnt"`
	License  string     `json:"lic"`
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Fetch returns up to limit recordings recorded in the configured country.
// Failures are logged and reported as an empty result.
func (c *Client) Fetch(ctx context.Context, species *domain.Species, callType string, limit int) []domain.Recording {
	log := logger.Get().With(zap.String("source", domain.SourceXenoCanto))

	if c.cfg.APIKey == "" {
		log.Warn("xeno-canto API key not set; set XENO_CANTO_API_KEY to enable remote recordings")
		c.metrics.IncRecordingFetch(domain.SourceXenoCanto, metrics.OutcomeError)
		return nil
	}
	if species == nil || strings.TrimSpace(species.ScientificName) == "" {
		log.Warn("species has no scientific name, skipping xeno-canto lookup")
		c.metrics.IncRecordingFetch(domain.SourceXenoCanto, metrics.OutcomeEmpty)
		return nil
	}

	query := c.buildQuery(species, callType)
	key := query + "|" + strconv.Itoa(limit)

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, log, query, limit), nil
	})
	recs := v.([]domain.Recording)

	outcome := metrics.OutcomeHit
	if len(recs) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	c.metrics.IncRecordingFetch(domain.SourceXenoCanto, outcome)
	log.Info("xeno-canto lookup finished",
		zap.String("scientific_name", species.ScientificName),
		zap.String("country", c.cfg.Country),
		zap.Int("found", len(recs)))

	// shared results must not be mutated by callers
	out := make([]domain.Recording, len(recs))
	copy(out, recs)
	return out
}

func (c *Client) buildQuery(species *domain.Species, callType string) string {
	var b strings.Builder
	genus, epithet, ok := species.GenusAndEpithet()
	if ok {
		fmt.Fprintf(&b, "gen:%s sp:%s", genus, epithet)
	} else {
		fmt.Fprintf(&b, "gen:%s", genus)
	}
	if c.cfg.Country != "" {
		fmt.Fprintf(&b, " cnt:%s", c.cfg.Country)
	}
	if callType = strings.TrimSpace(callType); callType != "" {
		fmt.Fprintf(&b, " type:%s", callType)
	}
	return b.String()
}

func (c *Client) requestURL(query, key string) string {
	return c.cfg.BaseURL + "?query=" + url.QueryEscape(query) + "&key=" + key
}

func (c *Client) fetch(ctx context.Context, log *zap.Logger, query string, limit int) []domain.Recording {
	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		log.Warn("gave up waiting for xeno-canto rate limiter", zap.Error(err))
		return []domain.Recording{}
	}
	c.metrics.ObserveLimiterWait(time.Since(start))

	log.Info("requesting xeno-canto", zap.String("url", c.requestURL(query, "***")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(query, url.QueryEscape(c.cfg.APIKey)), nil)
	if err != nil {
		log.Error("failed to build xeno-canto request", zap.Error(err))
		return []domain.Recording{}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full URL, key included
		log.Warn("xeno-canto request failed", zap.String("error", redact(err.Error(), c.cfg.APIKey)))
		return []domain.Recording{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to read xeno-canto response", zap.Error(err))
		return []domain.Recording{}
	}

	var payload apiResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if decodeErr == nil && payload.Message != "" {
			msg = payload.Message
		}
		log.Warn("xeno-canto API error", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return []domain.Recording{}
	}
	if decodeErr != nil {
		log.Warn("malformed xeno-canto response", zap.Error(decodeErr))
		return []domain.Recording{}
	}
	if len(payload.Error) > 0 && string(payload.Error) != "null" {
		log.Warn("xeno-canto API error", zap.ByteString("error", payload.Error), zap.String("message", payload.Message))
		return []domain.Recording{}
	}

	out := make([]domain.Recording, 0, min(limit, len(payload.Recordings)))
	for _, r := range payload.Recordings {
		if len(out) >= limit {
			break
		}
		fileURL := normalizeURL(r.File)
		if fileURL == "" {
			continue
		}
		out = append(out, domain.Recording{
			Source:     domain.SourceXenoCanto,
			AudioURL:   fileURL,
			Location:   r.Location,
			CallType:   r.Type,
			Quality:    r.Quality,
			Recordist:  r.Recorder,
			Country:    r.Country,
			LicenseURL: normalizeURL(r.License),
			ExternalID: string(r.ID),
		})
	}
	return out
}

// normalizeURL turns protocol-relative URLs into https URLs.
func normalizeURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	s = strings.ReplaceAll(s, secret, "***")
	return strings.ReplaceAll(s, url.QueryEscape(secret), "***")
}
