package geo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// ErrUnknownGeometry is returned when a geometry kind is not one of
// Point, LineString, Polygon or MultiPolygon.
var ErrUnknownGeometry = errors.New("unknown geometry kind")

// Vertex is a single kept point. Distance is the separation from the
// predecessor in the original (pre-condensation) ring, kept for
// diagnostics; it is 0 for the first point of a ring.
type Vertex struct {
	Lon      float64
	Lat      float64
	Distance float64
}

// Ring is an ordered sequence of kept points for one source ring.
// An empty Ring means "no outline, use a center marker".
type Ring []Vertex

// Options tunes the condensation. Zero fields fall back to the defaults,
// so a partially filled struct is safe to use.
type Options struct {
	// IntervalFrequency is the target point count for ordinary rings:
	// the interval budget is totalDistance / IntervalFrequency.
	IntervalFrequency float64
	// CoarseFrequency replaces IntervalFrequency for MultiPolygon rings
	// past the two largest members, so minor islands stay cheap.
	CoarseFrequency float64
	// MaxPolygons caps how many MultiPolygon members are kept,
	// largest first.
	MaxPolygons int
}

// DefaultOptions returns the canonical tuning.
func DefaultOptions() Options {
	return Options{
		IntervalFrequency: 200,
		CoarseFrequency:   10,
		MaxPolygons:       10,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.IntervalFrequency <= 0 {
		o.IntervalFrequency = def.IntervalFrequency
	}
	if o.CoarseFrequency <= 0 {
		o.CoarseFrequency = def.CoarseFrequency
	}
	if o.MaxPolygons <= 0 {
		o.MaxPolygons = def.MaxPolygons
	}
	return o
}

// Condense resamples a boundary geometry into one Ring per source ring,
// bounded in size by the Options frequencies.
//
// Point geometries carry no drawable outline and condense to a single
// empty ring. MultiPolygons are capped to the MaxPolygons largest members
// (by first-ring point count) before their rings are flattened in order.
func Condense(g orb.Geometry, opts Options) ([]Ring, error) {
	opts = opts.withDefaults()

	var rings []orb.Ring
	multi := false

	switch geom := g.(type) {
	case orb.Point:
		return []Ring{{}}, nil

	case orb.LineString:
		rings = []orb.Ring{orb.Ring(geom)}

	case orb.Polygon:
		if len(geom) == 0 {
			rings = []orb.Ring{{}}
		} else {
			rings = []orb.Ring{geom[0]}
		}

	case orb.MultiPolygon:
		rings = flattenLargest(geom, opts.MaxPolygons)
		multi = true

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownGeometry, g)
	}

	out := make([]Ring, 0, len(rings))
	for i, ring := range rings {
		frequency := opts.IntervalFrequency
		if multi && i > 1 {
			// only the two largest landmasses get fine detail
			frequency = opts.CoarseFrequency
		}
		out = append(out, condenseRing(ring, frequency))
	}

	return out, nil
}

// flattenLargest sorts MultiPolygon members by the point count of their
// first ring, descending, keeps the top maxPolygons and flattens their
// rings into one ordered list. First-ring size is a cheap proxy for land
// area; anything past the cap is visually negligible.
func flattenLargest(mp orb.MultiPolygon, maxPolygons int) []orb.Ring {
	members := make([]orb.Polygon, len(mp))
	copy(members, mp)

	sort.SliceStable(members, func(i, j int) bool {
		return firstRingLen(members[i]) > firstRingLen(members[j])
	})

	if len(members) > maxPolygons {
		members = members[:maxPolygons]
	}

	var rings []orb.Ring
	for _, poly := range members {
		rings = append(rings, poly...)
	}

	return rings
}

func firstRingLen(p orb.Polygon) int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// condenseRing keeps the first point unconditionally, then keeps a point
// each time the accumulated separation strictly exceeds the interval
// budget (totalDistance / frequency), resetting the accumulator on every
// keep. Greedy arc-length resampling: point density along real outlines
// is wildly non-uniform, so a fixed stride would starve sparse stretches.
func condenseRing(ring orb.Ring, frequency float64) Ring {
	if len(ring) == 0 {
		return Ring{}
	}

	separations := make([]float64, len(ring))
	total := 0.0
	for i := 1; i < len(ring); i++ {
		separations[i] = Separation(ring[i-1], ring[i])
		total += separations[i]
	}

	budget := total / frequency

	kept := make(Ring, 0, len(ring))
	acc := 0.0
	for i, p := range ring {
		acc += separations[i]
		if i == 0 || acc > budget {
			kept = append(kept, Vertex{Lon: p[0], Lat: p[1], Distance: separations[i]})
			acc = 0
		}
	}

	return kept
}
