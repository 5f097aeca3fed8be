// internal/adapters/foursquare/client.go
package foursquare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"truffle_shuffle/internal/adapters/observability"
	"truffle_shuffle/internal/domain"
)

const (
	DefaultBaseURL = "https://api.foursquare.com/v2"
	DefaultVersion = "20231010"

	searchLimit = 50
)

// Japanese, sushi, ramen, café and bubble tea categories.
var categoryIDs = []string{
	"4bf58dd8d48988d111941735",
	"4bf58dd8d48988d1d2941735",
	"55a59bace4b013909087cb24",
	"4bf58dd8d48988d16d941735",
	"52e81612bcbc57f1066b7a0c",
}

type Client struct {
	base         string
	hc           *http.Client
	clientID     string
	clientSecret string
	version      string
}

func New(base, clientID, clientSecret, version string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, domain.ErrNotConfigured
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		base:         strings.TrimRight(base, "/"),
		hc:           &http.Client{Timeout: 10 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		version:      version,
	}, nil
}

var (
	ErrUnauthorized = errors.New("foursquare: unauthorized")
	ErrForbidden    = errors.New("foursquare: forbidden")
)

type searchEnvelope struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorType   string `json:"errorType"`
		ErrorDetail string `json:"errorDetail"`
	} `json:"meta"`
	Response struct {
		Venues []map[string]any `json:"venues"`
	} `json:"response"`
}

// SearchVenues calls venues/search once. Venues are returned as raw JSON objects.
func (c *Client) SearchVenues(ctx context.Context, q domain.SearchQuery) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("ll", q.LL())
	params.Set("radius", strconv.Itoa(q.Radius))
	params.Set("categoryId", strings.Join(categoryIDs, ","))
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("v", c.version)

	var env searchEnvelope
	if err := c.get(ctx, c.base+"/venues/search?"+params.Encode(), &env); err != nil {
		return nil, err
	}
	if env.Meta.Code != 0 && env.Meta.Code != http.StatusOK {
		return nil, fmt.Errorf("foursquare meta %d %s: %s", env.Meta.Code, env.Meta.ErrorType, env.Meta.ErrorDetail)
	}
	if env.Response.Venues == nil {
		return []map[string]any{}, nil
	}
	return env.Response.Venues, nil
}

// get performs a single GET and decodes JSON into out.
func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "truffle-shuffle/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("foursquare", "venues/search", 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// url.Error carries the full URL, credentials included
		var ue *url.Error
		if errors.As(err, &ue) {
			return fmt.Errorf("foursquare request failed: %w", ue.Err)
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("foursquare", "venues/search", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
