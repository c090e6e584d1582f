package service

import (
	"sync"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// SessionSnapshot is the cached per-learner view the classroom reads on
// every render: role, locale, and the set of completed lessons.
type SessionSnapshot struct {
	Role             model.UserRole
	Language         string
	CompletedLessons map[string]bool
	UpdatedAt        time.Time
}

func (s SessionSnapshot) Privileged() bool {
	return s.Role.IsPrivileged()
}

// SessionRegistry caches session snapshots and refreshes them in the
// background. Refreshes from the database race across rapid navigation, so
// each refresh captures a generation token at issue time and a response is
// applied only while its token is still current: last request issued wins,
// not last response received. A superseded response is dropped silently;
// staleness is not a user-visible error.
type SessionRegistry struct {
	mu      sync.Mutex
	entries map[uint]*sessionEntry

	users    *repository.UserRepository
	progress *repository.ProgressRepository

	// loader is swapped in tests; production wires loadFromDB.
	loader func(userID uint) (SessionSnapshot, error)
}

type sessionEntry struct {
	gen  uint64
	snap SessionSnapshot
}

func NewSessionRegistry(users *repository.UserRepository, progress *repository.ProgressRepository) *SessionRegistry {
	r := &SessionRegistry{
		entries:  make(map[uint]*sessionEntry),
		users:    users,
		progress: progress,
	}
	r.loader = r.loadFromDB
	return r
}

// Snapshot returns the current cached snapshot, if one has been applied.
func (r *SessionRegistry) Snapshot(userID uint) (SessionSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok || e.snap.UpdatedAt.IsZero() {
		return SessionSnapshot{}, false
	}
	return e.snap, true
}

// RefreshAsync issues a refresh and returns immediately. The fetch runs in
// the background; a stale completion is discarded by the generation check.
func (r *SessionRegistry) RefreshAsync(userID uint) {
	gen := r.beginRefresh(userID)
	go func() {
		snap, err := r.loader(userID)
		if err != nil {
			logger.Log.Warn("session refresh failed", zap.Uint("userID", userID), zap.Error(err))
			return
		}
		r.applySnapshot(userID, gen, snap)
	}()
}

// Invalidate drops the cached snapshot and bumps the generation so that any
// in-flight refresh issued earlier can no longer apply.
func (r *SessionRegistry) Invalidate(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[userID]; ok {
		e.gen++
		e.snap = SessionSnapshot{}
	}
}

// beginRefresh bumps and captures the generation for a new fetch.
func (r *SessionRegistry) beginRefresh(userID uint) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		e = &sessionEntry{}
		r.entries[userID] = e
	}
	e.gen++
	return e.gen
}

// applySnapshot installs a fetched snapshot only if its generation is still
// current. Returns false when the response arrived too late.
func (r *SessionRegistry) applySnapshot(userID uint, gen uint64, snap SessionSnapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok || e.gen != gen {
		return false
	}
	snap.UpdatedAt = time.Now()
	e.snap = snap
	return true
}

func (r *SessionRegistry) loadFromDB(userID uint) (SessionSnapshot, error) {
	user, err := r.users.FindByID(userID)
	if err != nil {
		return SessionSnapshot{}, err
	}

	records, err := r.progress.ListCompleted(userID)
	if err != nil {
		return SessionSnapshot{}, err
	}

	completed := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Completed {
			completed[rec.LessonID] = true
		}
	}

	return SessionSnapshot{
		Role:             user.Role,
		Language:         user.Language,
		CompletedLessons: completed,
	}, nil
}
