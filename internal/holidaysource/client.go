package holidaysource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/sethvargo/go-retry"
)

type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Client fetches public holidays from a date.nager.at compatible API.
type Client struct {
	baseURL      string
	timeout      time.Duration
	maxRetries   uint64
	retryBackoff time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	backoff := config.RetryBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      strings.TrimRight(config.BaseURL, "/"),
		timeout:      timeout,
		maxRetries:   uint64(maxRetries),
		retryBackoff: backoff,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// PublicHolidays returns the holidays for country in year. Any failure is
// logged and reported as an empty result.
func (c *Client) PublicHolidays(ctx context.Context, country string, year int) []sourcetypes.PublicHoliday {
	holidays, err := c.fetch(ctx, country, year)
	if err != nil {
		c.logger.Warn("holiday source: fetch failed, treating as no holidays",
			"country", country,
			"year", year,
			"error", err)
		return []sourcetypes.PublicHoliday{}
	}
	return holidays
}

func (c *Client) fetch(ctx context.Context, country string, year int) ([]sourcetypes.PublicHoliday, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout*time.Duration(c.maxRetries+1))
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, strconv.Itoa(year), url.PathEscape(country))

	var holidays []sourcetypes.PublicHoliday
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("HTTP request failed: %w", err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
			holidays = nil
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			_, _ = io.Copy(io.Discard, resp.Body)
			return retry.RetryableError(fmt.Errorf("holiday API returned status %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("holiday API returned status %d", resp.StatusCode)
		}

		var decoded []sourcetypes.PublicHoliday
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			if errors.Is(err, io.EOF) {
				holidays = nil
				return nil
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}
		holidays = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	valid := make([]sourcetypes.PublicHoliday, 0, len(holidays))
	for _, h := range holidays {
		if err := h.Validate(); err != nil {
			c.logger.Debug("holiday source: skipping invalid record", "country", country, "year", year, "error", err)
			continue
		}
		if _, err := h.ParsedDate(); err != nil {
			c.logger.Debug("holiday source: skipping record with bad date", "country", country, "date", h.Date)
			continue
		}
		valid = append(valid, h)
	}

	c.logger.Info("holiday source: fetched public holidays",
		"country", country,
		"year", year,
		"count", len(valid))
	return valid, nil
}
