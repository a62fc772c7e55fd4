// Package metadata resolves what a website can learn about the current session.
package metadata

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/verte-zerg/doxsim/internal/model"
)

const (
	// DefaultEndpoint is an ipapi-compatible geolocation endpoint.
	DefaultEndpoint = "https://ipapi.co/json/"
	// DefaultTimeout bounds the metadata request.
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Fallback values used when the endpoint cannot be reached.
const (
	FallbackIP        = "192.168.1.1"
	FallbackLatitude  = 40.7128
	FallbackLongitude = -74.0060
)

// Client fetches session metadata from a geolocation endpoint.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	now       func() time.Time
}

// NewClient returns a Client. Empty values fall back to the defaults.
func NewClient(endpoint string, timeout time.Duration, userAgent string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent()
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		now:       time.Now,
	}
}

// Resolve returns the session metadata. Failures are logged and replaced by
// the fallback record; Resolve never returns an error.
func (c *Client) Resolve(ctx context.Context) model.Metadata {
	md, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("metadata: using fallback: %v", err)
		return Fallback(c.userAgent, c.now())
	}
	return md
}

// Offline returns the fallback record without touching the network.
func (c *Client) Offline() model.Metadata {
	return Fallback(c.userAgent, c.now())
}

// Fetch queries the endpoint and parses its response.
func (c *Client) Fetch(ctx context.Context) (model.Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return model.Metadata{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to read response: %w", err)
	}
	return parse(body, c.userAgent, c.now())
}

func parse(body []byte, userAgent string, now time.Time) (model.Metadata, error) {
	if !gjson.ValidBytes(body) {
		return model.Metadata{}, fmt.Errorf("invalid json response")
	}
	doc := gjson.ParseBytes(body)
	if doc.Get("error").Bool() {
		return model.Metadata{}, fmt.Errorf("endpoint error: %s", doc.Get("reason").String())
	}
	return model.Metadata{
		IPAddress: stringOr(doc, "ip", "127.0.0.1"),
		Location: model.Location{
			City:      stringOr(doc, "city", "Unknown City"),
			Region:    stringOr(doc, "region", "Unknown Region"),
			Country:   stringOr(doc, "country_name", "Unknown Country"),
			Latitude:  doc.Get("latitude").Float(),
			Longitude: doc.Get("longitude").Float(),
		},
		BrowserInfo: DetectBrowserInfo(userAgent),
		Timestamp:   now.UnixMilli(),
	}, nil
}

func stringOr(doc gjson.Result, path, fallback string) string {
	if v := doc.Get(path).String(); v != "" {
		return v
	}
	return fallback
}

// Fallback returns the record used when metadata cannot be fetched.
func Fallback(userAgent string, now time.Time) model.Metadata {
	return model.Metadata{
		IPAddress: FallbackIP,
		Location: model.Location{
			City:      "Unknown City",
			Region:    "Unknown Region",
			Country:   "Unknown Country",
			Latitude:  FallbackLatitude,
			Longitude: FallbackLongitude,
		},
		BrowserInfo: DetectBrowserInfo(userAgent),
		Timestamp:   now.UnixMilli(),
	}
}
