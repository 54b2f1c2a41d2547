package geo

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestCondensePointYieldsOneEmptyRing(t *testing.T) {
	rings, err := Condense(orb.Point{-1.15, 52.95}, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	if len(rings[0]) != 0 {
		t.Errorf("got %d vertices, want empty ring", len(rings[0]))
	}
}

func TestCondenseKeepsFirstPoint(t *testing.T) {
	line := orb.LineString{
		{10, 20},
		{10.001, 20.001},
		{10.002, 20.002},
		{11, 21},
	}

	rings, err := Condense(line, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 1 || len(rings[0]) == 0 {
		t.Fatalf("unexpected result shape: %v", rings)
	}

	first := rings[0][0]
	if first.Lon != 10 || first.Lat != 20 {
		t.Errorf("first vertex = (%v, %v), want (10, 20)", first.Lon, first.Lat)
	}
	if first.Distance != 0 {
		t.Errorf("first vertex distance = %v, want 0", first.Distance)
	}
}

func TestCondensePolygonUsesOuterRingOnly(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}, // outer
		{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}, // hole, ignored
	}

	rings, err := Condense(poly, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	if rings[0][0].Lon != 0 || rings[0][0].Lat != 0 {
		t.Errorf("first vertex = %v, want outer ring origin", rings[0][0])
	}
}

func TestCondenseMultiPolygonCapAndOrder(t *testing.T) {
	mp := orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {0, 0}}},                 // 3 points
		{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}}, // 5 points
		{{{9, 9}, {9, 9.1}}},                       // 2 points
	}

	opts := DefaultOptions()
	opts.MaxPolygons = 2

	rings, err := Condense(mp, opts)
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 2 {
		t.Fatalf("got %d rings, want 2", len(rings))
	}
	// largest first: at the default fine frequency every point survives
	if len(rings[0]) != 5 {
		t.Errorf("ring 0 has %d vertices, want 5", len(rings[0]))
	}
	if len(rings[1]) != 3 {
		t.Errorf("ring 1 has %d vertices, want 3", len(rings[1]))
	}
	if rings[0][0].Lon != 5 || rings[0][0].Lat != 5 {
		t.Errorf("ring 0 starts at (%v, %v), want largest polygon first", rings[0][0].Lon, rings[0][0].Lat)
	}
}

func TestCondenseMultiPolygonCoarseTail(t *testing.T) {
	// Four equally sized square islands. Members past the second get the
	// coarse frequency, so their mid-edge points are dropped while the
	// first two keep every point.
	island := func(base float64) orb.Polygon {
		return orb.Polygon{{
			{base, base},
			{base + 0.5, base}, {base + 1, base},
			{base + 1, base + 0.5}, {base + 1, base + 1},
			{base + 0.5, base + 1}, {base, base + 1},
			{base, base + 0.5}, {base, base},
		}}
	}

	mp := orb.MultiPolygon{island(0), island(10), island(20), island(30)}

	opts := Options{IntervalFrequency: 200, CoarseFrequency: 2, MaxPolygons: 10}

	rings, err := Condense(mp, opts)
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}
	if len(rings) != 4 {
		t.Fatalf("got %d rings, want 4", len(rings))
	}

	if len(rings[0]) != 9 || len(rings[1]) != 9 {
		t.Errorf("fine rings have %d and %d vertices, want 9 each", len(rings[0]), len(rings[1]))
	}
	for i := 2; i < 4; i++ {
		if len(rings[i]) >= 9 {
			t.Errorf("coarse ring %d has %d vertices, want fewer than 9", i, len(rings[i]))
		}
		if len(rings[i]) == 0 {
			t.Errorf("coarse ring %d is empty", i)
		}
	}
}

func TestCondenseSinglePointRing(t *testing.T) {
	rings, err := Condense(orb.LineString{{3, 4}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 1 || len(rings[0]) != 1 {
		t.Fatalf("unexpected result shape: %v", rings)
	}
	if v := rings[0][0]; v.Lon != 3 || v.Lat != 4 || v.Distance != 0 {
		t.Errorf("got %+v, want (3, 4) with distance 0", v)
	}
}

func TestCondenseDegenerateRingCollapsesToFirstPoint(t *testing.T) {
	// all points identical: total distance 0, strict comparison keeps
	// only the first point
	line := orb.LineString{{7, 7}, {7, 7}, {7, 7}, {7, 7}}

	rings, err := Condense(line, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	if len(rings) != 1 || len(rings[0]) != 1 {
		t.Fatalf("got %v, want a single ring with the first point only", rings)
	}
}

func TestCondenseUnknownGeometry(t *testing.T) {
	_, err := Condense(orb.MultiLineString{{{0, 0}, {1, 1}}}, DefaultOptions())
	if !errors.Is(err, ErrUnknownGeometry) {
		t.Errorf("got %v, want ErrUnknownGeometry", err)
	}
}

func TestCondenseBoundsOutputSize(t *testing.T) {
	// a dense ring must come out near the frequency target, not at the
	// input size
	ring := make(orb.Ring, 0, 2001)
	for i := 0; i <= 2000; i++ {
		ring = append(ring, orb.Point{float64(i) * 0.001, 0})
	}

	rings, err := Condense(orb.Polygon{ring}, DefaultOptions())
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}

	got := len(rings[0])
	if got > 250 {
		t.Errorf("condensed ring has %d vertices, want near the 200 target", got)
	}
	if got < 150 {
		t.Errorf("condensed ring has %d vertices, too aggressive for a uniform ring", got)
	}
}
