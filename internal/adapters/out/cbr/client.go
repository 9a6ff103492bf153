// Package cbr implements the currency rate resolver against the Central
// Bank of Russia daily feed (https://www.cbr-xml-daily.ru/daily_json.js).
// All quotes in the feed are relative to RUB; cross-rates between two
// foreign currencies are derived from their RUB-relative values.
package cbr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
)

// Quote is one currency entry in the daily feed. Value is quoted per
// Nominal units: a HUF quote of 25.10/100 means 100 HUF cost 25.10 RUB.
type Quote struct {
	Value   decimal.Decimal `json:"Value"`
	Nominal int64           `json:"Nominal"`
}

// PerUnit returns the RUB price of a single unit of the currency.
func (q Quote) PerUnit() decimal.Decimal {
	nominal := q.Nominal
	if nominal == 0 {
		nominal = 1
	}
	return q.Value.Div(decimal.NewFromInt(nominal))
}

// DailyFeed is the decoded daily-rate document, keyed by currency code.
type DailyFeed struct {
	Valute map[string]Quote `json:"Valute"`
}

// Client fetches the daily-rate document over HTTP with retries.
type Client struct {
	feedURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a feed client for the given URL. Transient failures are
// retried with backoff; the feed host throttles aggressively at times.
func NewClient(feedURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil

	return &Client{
		feedURL:    feedURL,
		httpClient: httpClient,
	}
}

// FetchDaily downloads and decodes the current daily-rate document.
func (c *Client) FetchDaily(ctx context.Context) (DailyFeed, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return DailyFeed{}, fmt.Errorf("create feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DailyFeed{}, fmt.Errorf("fetch rate feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DailyFeed{}, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	var feed DailyFeed
	if err = json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return DailyFeed{}, fmt.Errorf("decode rate feed: %w", err)
	}

	return feed, nil
}
