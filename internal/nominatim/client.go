// Package nominatim queries an OSM geocoding service for the boundary
// outline of a named location.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrRequestFailed wraps network, status and decode failures from the
// geocoding service.
var ErrRequestFailed = errors.New("boundary request failed")

// CategoryPostalCode switches candidate selection to the first Point
// result; postal code outlines from the geocoder are unreliable.
const CategoryPostalCode = "Postal Code"

// Location identifies a place to look up. Name doubles as the fallback
// map center label when no outline exists.
type Location struct {
	Name     string
	Category string
}

// Client is a rate-limited geocoding client.
type Client struct {
	HTTP      *http.Client
	Limiter   *rate.Limiter
	BaseURL   string
	UserAgent string
}

// NewClient builds a Client honoring the service usage policy via a
// requests-per-second limit.
func NewClient(httpClient *http.Client, baseURL, userAgent string, rps float64) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Client{
		HTTP:      httpClient,
		Limiter:   limiter,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
	}
}

// candidate is one search result; geojson is only present when the
// service was asked for polygon output and has one.
type candidate struct {
	DisplayName string            `json:"display_name"`
	GeoJSON     *geojson.Geometry `json:"geojson"`
}

var (
	commaGap   = regexp.MustCompile(`\s*,\s*`)
	whitespace = regexp.MustCompile(`\s+`)
)

// EncodeName turns a canonical place name into the geocoder query form:
// whitespace around commas is stripped, remaining whitespace becomes "+".
func EncodeName(name string) string {
	return whitespace.ReplaceAllString(commaGap.ReplaceAllString(name, ","), "+")
}

// FetchBoundary looks up the location and returns its boundary geometry.
// A nil geometry with nil error means the service had no outline; the
// caller degrades to a center marker.
func (c *Client) FetchBoundary(ctx context.Context, loc Location) (orb.Geometry, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&polygon_geojson=1&format=json", c.BaseURL, EncodeName(loc.Name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	geom := selectGeometry(loc, candidates)

	if geom == nil {
		log.Debug().
			Str("location", loc.Name).
			Int("candidates", len(candidates)).
			Msg("No boundary geometry found, falling back to center marker")
	} else {
		log.Debug().
			Str("location", loc.Name).
			Str("kind", geom.GeoJSONType()).
			Int("candidates", len(candidates)).
			Msg("Boundary geometry selected")
	}

	return geom, nil
}

// selectGeometry picks the candidate to use. Postal codes take the first
// Point result; everything else takes the first candidate outright, even
// when it carries no geometry.
func selectGeometry(loc Location, candidates []candidate) orb.Geometry {
	if loc.Category == CategoryPostalCode {
		for _, cand := range candidates {
			if cand.GeoJSON == nil {
				continue
			}
			if _, ok := cand.GeoJSON.Geometry().(orb.Point); ok {
				return cand.GeoJSON.Geometry()
			}
		}
		return nil
	}

	if len(candidates) == 0 || candidates[0].GeoJSON == nil {
		return nil
	}
	return candidates[0].GeoJSON.Geometry()
}
