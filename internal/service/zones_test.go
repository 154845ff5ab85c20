package service

import "testing"

func TestResolveSouthernLatitude(t *testing.T) {
	r := DefaultZoneResolver()
	if got := r.Resolve(-5, 10); got != "ward_001" {
		t.Fatalf("expected ward_001 for southern latitude, got %s", got)
	}
}

func TestResolveNorthernLatitude(t *testing.T) {
	r := DefaultZoneResolver()
	if got := r.Resolve(5, 10); got != "ward_002" {
		t.Fatalf("expected ward_002 for northern latitude, got %s", got)
	}
}

func TestResolveEquatorRoutesSouth(t *testing.T) {
	r := DefaultZoneResolver()
	if got := r.Resolve(0, 0); got != "ward_001" {
		t.Fatalf("expected ward_001 at the equator, got %s", got)
	}
}

func TestResolveIsTotalOverValidRange(t *testing.T) {
	r := DefaultZoneResolver()
	coords := [][2]float64{
		{-90, -180}, {-90, 180}, {90, -180}, {90, 180},
		{0, 0}, {45.5, -73.6}, {-33.9, 151.2},
	}
	for _, c := range coords {
		if got := r.Resolve(c[0], c[1]); got == "" {
			t.Fatalf("expected non-empty ward for (%f, %f)", c[0], c[1])
		}
	}
}

func TestResolveFallsBackToDefaultWard(t *testing.T) {
	r := NewZoneResolver([]LatitudeBand{{WardID: "ward_x", MinLat: 10, MaxLat: 20}}, "ward_default")
	if got := r.Resolve(50, 0); got != "ward_default" {
		t.Fatalf("expected fallback ward, got %s", got)
	}
	if got := r.Resolve(15, 0); got != "ward_x" {
		t.Fatalf("expected ward_x inside band, got %s", got)
	}
}
