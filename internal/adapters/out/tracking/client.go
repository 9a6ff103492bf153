// Package tracking implements the TrackingProvider port against a carrier
// aggregator HTTP feed. The feed speaks its own status vocabulary; this
// package maps it onto the domain's parcel statuses.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parceltracker/internal/core/domain/model/parcel"
	"parceltracker/internal/core/ports"
	"parceltracker/internal/pkg/errs"
)

// statusMapping translates aggregator tags to parcel statuses. Tags not
// listed here fail the fetch rather than guessing.
var statusMapping = map[string]parcel.Status{
	"pending":          parcel.StatusCreated,
	"info_received":    parcel.StatusCreated,
	"in_transit":       parcel.StatusInTransit,
	"out_for_delivery": parcel.StatusPickUpReady,
	"pickup_ready":     parcel.StatusPickUpReady,
	"delivered":        parcel.StatusDelivered,
	"expired":          parcel.StatusLost,
	"exception":        parcel.StatusLost,
}

// Client fetches shipment state from the aggregator feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a tracking feed client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// trackingResponse is the aggregator payload for a single shipment.
type trackingResponse struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fetch returns the latest tracking event for the shipment. An unknown
// tracking number is reported as a not-found error so the refresh job can
// skip the parcel without aborting the whole run.
func (c *Client) Fetch(ctx context.Context, trackingNumber, carrierSlug string) (ports.TrackingEvent, error) {
	if c == nil || c.baseURL == "" {
		return ports.TrackingEvent{}, fmt.Errorf("tracking client not configured")
	}

	endpoint := fmt.Sprintf("%s/api/v1/trackings/%s/%s",
		c.baseURL,
		url.PathEscape(carrierSlug),
		url.PathEscape(trackingNumber),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.TrackingEvent{}, fmt.Errorf("create tracking request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.TrackingEvent{}, fmt.Errorf("fetch tracking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.TrackingEvent{}, errs.NewObjectNotFoundError("tracking number", trackingNumber)
	}

	if resp.StatusCode != http.StatusOK {
		return ports.TrackingEvent{}, fmt.Errorf("tracking feed returned status %d", resp.StatusCode)
	}

	var payload trackingResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.TrackingEvent{}, fmt.Errorf("decode tracking response: %w", err)
	}

	status, ok := statusMapping[strings.ToLower(payload.Status)]
	if !ok {
		return ports.TrackingEvent{}, fmt.Errorf("unknown tracking status %q", payload.Status)
	}

	occurredAt := payload.UpdatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return ports.TrackingEvent{
		Status:     status,
		OccurredAt: occurredAt,
	}, nil
}
