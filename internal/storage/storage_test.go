package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func testMeta() SessionMeta {
	return SessionMeta{
		Telescope:   "GBT",
		System:      "Lband_GUPPI",
		Mode:        "search",
		Noise:       true,
		Kind:        "intensity",
		DType:       "float32",
		NumRows:     2,
		NumSamples:  4,
		DtSeconds:   4e-8,
		FcentHz:     1400e6,
		BandwidthHz: 800e6,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "obs.sqlite"))
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateSession(ctx, testMeta())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess, err := store.Session(ctx, id)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.SessionMeta != testMeta() {
		t.Errorf("session meta = %+v, want %+v", sess.SessionMeta, testMeta())
	}
	if sess.CreatedAt.IsZero() {
		t.Error("session has no creation time")
	}
}

func TestObservationRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "obs.sqlite"))
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateSession(ctx, testMeta())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	data := [][]float64{
		{1.5, -2.25, 0, 127},
		{0.001, 200, -200, 42},
	}
	if err = store.StoreObservation(ctx, id, data); err != nil {
		t.Fatalf("StoreObservation: %v", err)
	}

	got, err := store.Observation(ctx, id)
	if err != nil {
		t.Fatalf("Observation: %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("rows = %d, want %d", len(got), len(data))
	}
	for i := range data {
		for j := range data[i] {
			if got[i][j] != data[i][j] {
				t.Errorf("sample (%d,%d) = %g, want %g", i, j, got[i][j], data[i][j])
			}
		}
	}
}

func TestObservationMissingSession(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "obs.sqlite"))
	defer store.Close()

	ctx := context.Background()
	if _, err := store.CreateSession(ctx, testMeta()); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := store.Observation(ctx, 999); err == nil {
		t.Fatal("expected error for a session with no data")
	}
}

func TestSessionsOrdering(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "obs.sqlite"))
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.CreateSession(ctx, testMeta()); err != nil {
			t.Fatalf("CreateSession %d: %v", i, err)
		}
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].ID < sessions[i-1].ID {
			t.Errorf("sessions out of order: %d before %d", sessions[i-1].ID, sessions[i].ID)
		}
	}
}
