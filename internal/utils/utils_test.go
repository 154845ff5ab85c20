package utils

import "testing"

func TestGenerateShareTokenUnique(t *testing.T) {
	a := GenerateShareToken()
	b := GenerateShareToken()
	if len(a) != 32 {
		t.Fatalf("expected 32-char token, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// London to Paris is roughly 344 km.
	d := HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	if d < 330 || d > 360 {
		t.Fatalf("unexpected distance: %f km", d)
	}
}

func TestHaversineZero(t *testing.T) {
	if d := HaversineKm(10, 20, 10, 20); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}
