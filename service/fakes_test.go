package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	dmn "github.com/maeln/r-astar/domain"
)

type memLogger struct {
	sync.Mutex
	infos, warnings, errors []string
}

func (l *memLogger) Info(msg string)    { l.Lock(); l.infos = append(l.infos, msg); l.Unlock() }
func (l *memLogger) Warning(msg string) { l.Lock(); l.warnings = append(l.warnings, msg); l.Unlock() }
func (l *memLogger) Error(msg string)   { l.Lock(); l.errors = append(l.errors, msg); l.Unlock() }

type memUserRepo struct {
	byID      map[uuid.UUID]*dmn.User
	saveErr   error
	lookupErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[user.ID] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
	err    error
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.claims = claims
	return "token-for-" + claims["username"].(string), nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, s.err
}

// memWindow is an in-memory i.SlidingWindow.
type memWindow struct {
	sync.Mutex
	events map[string][]time.Time
	err    error
}

func newMemWindow() *memWindow {
	return &memWindow{events: make(map[string][]time.Time)}
}

func (w *memWindow) Admit(_ context.Context, key, _ string, at time.Time, window time.Duration, limit int64) (bool, error) {
	w.Lock()
	defer w.Unlock()
	if w.err != nil {
		return false, w.err
	}

	cutoff := at.Add(-window)
	kept := w.events[key][:0]
	for _, t := range w.events[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	sort.Slice(kept, func(a, b int) bool { return kept[a].Before(kept[b]) })
	w.events[key] = kept

	if int64(len(kept)) >= limit {
		return false, nil
	}
	w.events[key] = append(w.events[key], at)
	return true, nil
}

func (w *memWindow) Count(_ context.Context, key string) (int64, error) {
	w.Lock()
	defer w.Unlock()
	return int64(len(w.events[key])), w.err
}

type countingLimiter struct {
	calls    int
	subjects []string
	err      error
}

func (c *countingLimiter) Allow(_ context.Context, subject string) error {
	c.calls++
	c.subjects = append(c.subjects, subject)
	return c.err
}

var errStore = errors.New("store unavailable")
