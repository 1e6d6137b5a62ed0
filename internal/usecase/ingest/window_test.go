package ingest

import (
	"testing"
	"time"
)

func TestWindowContainsInclusiveBounds(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	window := importWindow{start: start, end: end}

	if !window.contains(start) {
		t.Fatal("start boundary should be included")
	}
	if !window.contains(end) {
		t.Fatal("end boundary should be included")
	}
	if !window.contains(start.AddDate(0, 0, 15)) {
		t.Fatal("interior timestamp should be included")
	}
	if window.contains(start.Add(-time.Second)) {
		t.Fatal("timestamp before start should be excluded")
	}
	if window.contains(end.Add(time.Second)) {
		t.Fatal("timestamp after end should be excluded")
	}
}

func TestResolveWindowDefaults(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	window := resolveWindow(nil, nil, 30, now)
	if !window.end.Equal(now) {
		t.Fatalf("end = %v", window.end)
	}
	if !window.start.Equal(now.AddDate(0, 0, -30)) {
		t.Fatalf("start = %v", window.start)
	}
}

func TestResolveWindowExplicitBounds(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	window := resolveWindow(&start, &end, 30, now)
	if !window.start.Equal(start) || !window.end.Equal(end) {
		t.Fatalf("window = [%v, %v]", window.start, window.end)
	}

	// Explicit start with default end keeps the lookforward at now.
	window = resolveWindow(&start, nil, 30, now)
	if !window.start.Equal(start) || !window.end.Equal(now) {
		t.Fatalf("window = [%v, %v]", window.start, window.end)
	}
}
