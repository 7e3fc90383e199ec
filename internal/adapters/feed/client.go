// Package feed fetches the F1 race schedule from the upstream API and maps
// it into domain models at the boundary.
package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"f1calsync/internal/domain/model"
	"f1calsync/pkg/logger"
	"f1calsync/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Client fetches the current-season schedule. Fetch failures never propagate
// past this boundary: the caller receives an empty slice and the failure is
// logged here.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) {
		if c != nil {
			f.http = c
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Client) {
		if d > 0 {
			f.http.Timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Client) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewClient creates a schedule client for the given API endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("feed")
	}
	return c
}

// FetchSchedule returns the races of the current season, or an empty slice on
// any fetch or parse failure.
func (c *Client) FetchSchedule(ctx context.Context) []model.RaceEvent {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.fetchFailed(ctx, "building schedule request failed", err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.fetchFailed(ctx, "schedule request failed", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error(ctx, "schedule request returned non-200",
			logger.Int("status", resp.StatusCode),
		)
		metrics.RecordFeedError()
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fetchFailed(ctx, "reading schedule body failed", err)
		return nil
	}

	races := parseRaces(body)
	c.logger.Info(ctx, "fetched schedule", logger.Int("races", len(races)))
	return races
}

func (c *Client) fetchFailed(ctx context.Context, msg string, err error) {
	c.logger.Error(ctx, msg, logger.Error(err))
	metrics.RecordFeedError()
}

// parseRaces maps the loosely-typed upstream JSON into RaceEvents. Unknown
// or missing fields map to zero values; sessions absent from the schedule
// block are simply not present in the Sessions map.
func parseRaces(body []byte) []model.RaceEvent {
	raceList := gjson.GetBytes(body, "races")
	if !raceList.IsArray() {
		return nil
	}

	races := make([]model.RaceEvent, 0, len(raceList.Array()))
	raceList.ForEach(func(_, race gjson.Result) bool {
		sessions := make(map[model.SessionType]model.SessionSchedule, len(model.SessionTypes))
		for _, st := range model.SessionTypes {
			block := race.Get("schedule." + st.Key())
			if !block.Exists() {
				continue
			}
			sessions[st] = model.SessionSchedule{
				Date: block.Get("date").String(),
				Time: block.Get("time").String(),
			}
		}

		races = append(races, model.RaceEvent{
			Name:  race.Get("raceName").String(),
			Round: int(race.Get("round").Int()),
			Circuit: model.Circuit{
				Name:    race.Get("circuit.circuitName").String(),
				City:    race.Get("circuit.city").String(),
				Country: race.Get("circuit.country").String(),
			},
			Sessions: sessions,
		})
		return true
	})
	return races
}
