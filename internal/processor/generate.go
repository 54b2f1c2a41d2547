// Package processor wires boundary fetching, coordinate condensation and
// URL assembly into the map URL pipeline.
package processor

import (
	"context"
	"errors"

	"github.com/Opteo/maps/internal/config"
	"github.com/Opteo/maps/internal/geo"
	"github.com/Opteo/maps/internal/nominatim"
	"github.com/Opteo/maps/internal/staticmap"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

// ErrNoLocation is returned when the canonical name or category is
// missing. Checked before any network call.
var ErrNoLocation = errors.New("no location provided")

// BoundaryFetcher is the external collaborator that resolves a named
// location to its boundary geometry.
type BoundaryFetcher interface {
	FetchBoundary(ctx context.Context, loc nominatim.Location) (orb.Geometry, error)
}

// Generator produces static map URLs for named locations.
type Generator struct {
	Fetcher BoundaryFetcher
	Config  *config.Config
}

// NewGenerator builds a Generator. A nil cfg falls back to defaults.
func NewGenerator(fetcher BoundaryFetcher, cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{Fetcher: fetcher, Config: cfg}
}

// GenerateMapURL runs the full pipeline: validate input, fetch the
// boundary, condense it and assemble the provider URL. Input validation
// happens before the fetch, so a missing key or location never costs a
// network call. An absent boundary degrades to a center-marker URL.
func (g *Generator) GenerateMapURL(ctx context.Context, loc nominatim.Location, apiKey string) (string, error) {
	if apiKey == "" {
		return "", staticmap.ErrNoAPIKey
	}
	if loc.Name == "" || loc.Category == "" {
		return "", ErrNoLocation
	}

	geom, err := g.Fetcher.FetchBoundary(ctx, loc)
	if err != nil {
		return "", err
	}

	var rings []geo.Ring
	if geom == nil {
		// no outline, use a center marker
		rings = []geo.Ring{{}}
	} else {
		rings, err = geo.Condense(geom, g.Config.CondenseOptions())
		if err != nil {
			return "", err
		}
	}

	kept := 0
	for _, r := range rings {
		kept += len(r)
	}
	log.Debug().
		Str("location", loc.Name).
		Int("rings", len(rings)).
		Int("points", kept).
		Msg("Boundary condensed")

	return staticmap.BuildURL(loc, rings, apiKey, g.Config.StaticMap)
}
