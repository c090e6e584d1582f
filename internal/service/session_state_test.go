package service

import (
	"sync"
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func newTestRegistry() *SessionRegistry {
	r := NewSessionRegistry(nil, nil)
	r.loader = func(userID uint) (SessionSnapshot, error) {
		return SessionSnapshot{Role: model.Student, Language: "he"}, nil
	}
	return r
}

func TestSnapshotEmptyBeforeRefresh(t *testing.T) {
	r := newTestRegistry()
	if _, ok := r.Snapshot(7); ok {
		t.Errorf("snapshot present before any refresh")
	}
}

func TestLastIssuedRefreshWins(t *testing.T) {
	r := newTestRegistry()

	// Two refreshes issued back to back; the earlier response arrives last.
	gen1 := r.beginRefresh(1)
	gen2 := r.beginRefresh(1)

	if !r.applySnapshot(1, gen2, SessionSnapshot{Language: "en"}) {
		t.Fatalf("current-generation response rejected")
	}
	if r.applySnapshot(1, gen1, SessionSnapshot{Language: "he"}) {
		t.Fatalf("stale response applied")
	}

	snap, ok := r.Snapshot(1)
	if !ok || snap.Language != "en" {
		t.Errorf("snapshot = %+v, want the later request's data", snap)
	}
}

func TestInvalidateDropsInFlightRefresh(t *testing.T) {
	r := newTestRegistry()

	gen := r.beginRefresh(1)
	r.Invalidate(1)

	if r.applySnapshot(1, gen, SessionSnapshot{Language: "he"}) {
		t.Fatalf("response applied after invalidation")
	}
	if _, ok := r.Snapshot(1); ok {
		t.Errorf("snapshot survived invalidation")
	}

	// A refresh issued after the invalidation applies normally.
	gen = r.beginRefresh(1)
	if !r.applySnapshot(1, gen, SessionSnapshot{Language: "he"}) {
		t.Errorf("fresh refresh rejected after invalidation")
	}
}

func TestRefreshAsyncPopulatesSnapshot(t *testing.T) {
	r := NewSessionRegistry(nil, nil)
	r.loader = func(userID uint) (SessionSnapshot, error) {
		return SessionSnapshot{
			Role:             model.Admin,
			CompletedLessons: map[string]bool{"l1": true},
		}, nil
	}

	r.RefreshAsync(42)

	// The fetch runs in a goroutine; poll until it lands.
	var snap SessionSnapshot
	var ok bool
	for i := 0; i < 200; i++ {
		if snap, ok = r.Snapshot(42); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !ok {
		t.Fatalf("snapshot never applied")
	}
	if !snap.Privileged() || !snap.CompletedLessons["l1"] {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := newTestRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n uint) {
			defer wg.Done()
			gen := r.beginRefresh(n % 3)
			r.applySnapshot(n%3, gen, SessionSnapshot{Language: "he"})
			r.Snapshot(n % 3)
			r.Invalidate(n % 3)
		}(uint(i))
	}
	wg.Wait()
}
