// Package staticmap assembles map-image provider URLs from condensed
// boundary rings.
package staticmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Opteo/maps/internal/geo"
	"github.com/Opteo/maps/internal/nominatim"
)

var (
	// ErrNoAPIKey is returned when the provider key is absent.
	ErrNoAPIKey = errors.New("no API key provided")
	// ErrNoCoordinates is returned when the shape builder receives no
	// rings at all.
	ErrNoCoordinates = errors.New("no coordinates found")
)

// featureStyles are the fixed provider styling parameters appended to
// every URL: label and POI noise off, muted landscape.
const featureStyles = "&style=feature:poi|visibility:off" +
	"&style=feature:transit|visibility:off" +
	"&style=feature:road|element:labels|visibility:off" +
	"&style=feature:landscape|saturation:-40"

// Style carries the provider endpoint and the tunable image parameters.
// Zero fields fall back to the defaults.
type Style struct {
	Endpoint   string `yaml:"endpoint"`
	Size       string `yaml:"size"`
	Scale      int    `yaml:"scale"`
	PathColor  string `yaml:"path_color"`
	FillColor  string `yaml:"fill_color"`
	PathWeight int    `yaml:"path_weight"`
}

// DefaultStyle returns the canonical image parameters.
func DefaultStyle() Style {
	return Style{
		Endpoint:   "https://maps.googleapis.com/maps/api/staticmap",
		Size:       "600x400",
		Scale:      2,
		PathColor:  "0x1B4D89FF",
		FillColor:  "0x1B4D8933",
		PathWeight: 2,
	}
}

func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.Endpoint == "" {
		s.Endpoint = def.Endpoint
	}
	if s.Size == "" {
		s.Size = def.Size
	}
	if s.Scale <= 0 {
		s.Scale = def.Scale
	}
	if s.PathColor == "" {
		s.PathColor = def.PathColor
	}
	if s.FillColor == "" {
		s.FillColor = def.FillColor
	}
	if s.PathWeight <= 0 {
		s.PathWeight = def.PathWeight
	}
	return s
}

// BuildShape renders the rings as provider query fragments. Rings with
// more than two points become a closed path; anything smaller degrades
// to a center fragment built from the location name. Ring order is
// preserved.
func BuildShape(loc nominatim.Location, rings []geo.Ring, style Style) (string, error) {
	if len(rings) == 0 {
		return "", ErrNoCoordinates
	}

	style = style.withDefaults()

	var sb strings.Builder
	for _, ring := range rings {
		if len(ring) > 2 {
			writePath(&sb, ring, style)
		} else {
			sb.WriteString("&center=")
			sb.WriteString(nominatim.EncodeName(loc.Name))
		}
	}

	return sb.String(), nil
}

// writePath emits one closed path fragment: style prefix, each vertex as
// lat,lon, then the first vertex again to close the loop.
func writePath(sb *strings.Builder, ring geo.Ring, style Style) {
	fmt.Fprintf(sb, "&path=color:%s|weight:%d|fillcolor:%s", style.PathColor, style.PathWeight, style.FillColor)

	for _, v := range ring {
		writeVertex(sb, v)
	}
	writeVertex(sb, ring[0])
}

func writeVertex(sb *strings.Builder, v geo.Vertex) {
	sb.WriteByte('|')
	sb.WriteString(formatCoord(v.Lat))
	sb.WriteByte(',')
	sb.WriteString(formatCoord(v.Lon))
}

// formatCoord uses the shortest round-trip form so URLs stay compact.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildURL composes the final image URL: fixed size/scale, the shape
// fragments, the fixed feature styles and the provider key.
func BuildURL(loc nominatim.Location, rings []geo.Ring, apiKey string, style Style) (string, error) {
	if apiKey == "" {
		return "", ErrNoAPIKey
	}

	style = style.withDefaults()

	shape, err := BuildShape(loc, rings, style)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s?size=%s&scale=%d%s%s&key=%s",
		style.Endpoint, style.Size, style.Scale, shape, featureStyles, apiKey), nil
}
