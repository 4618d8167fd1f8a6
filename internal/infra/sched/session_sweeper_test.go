//go:build !integration

package sched

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	lastSeen map[string]time.Time
	cutoffs  []time.Time
}

func (s *fakeStore) Sweep(cutoff time.Time) int {
	s.cutoffs = append(s.cutoffs, cutoff)
	n := 0
	for id, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.lastSeen, id)
			n++
		}
	}
	return n
}

func (s *fakeStore) Len() int { return len(s.lastSeen) }

func TestSessionSweeper_SweepOnce(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{lastSeen: map[string]time.Time{
		"old":   now.Add(-3 * time.Hour),
		"fresh": now.Add(-10 * time.Minute),
	}}
	w := NewSessionSweeper(time.Minute, 2*time.Hour, store, nil)
	w.now = func() time.Time { return now }

	if n := w.SweepOnce(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := store.lastSeen["fresh"]; !ok {
		t.Fatal("fresh session evicted")
	}
	if !store.cutoffs[0].Equal(now.Add(-2 * time.Hour)) {
		t.Fatalf("cutoff: %v", store.cutoffs[0])
	}
}

func TestSessionSweeper_RunStopsOnCancel(t *testing.T) {
	store := &fakeStore{lastSeen: map[string]time.Time{}}
	w := NewSessionSweeper(5*time.Millisecond, time.Hour, store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if len(store.cutoffs) == 0 {
		t.Fatal("sweeper never ran")
	}
}
