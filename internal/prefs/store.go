package prefs

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/listview"
)

// DefaultFlushDelay is how long the store waits after the last change
// before pushing a view's preferences to the back office. Column drags
// produce bursts of saves; only the final state matters.
const DefaultFlushDelay = 500 * time.Millisecond

// Remote is the slice of the API client the store needs.
type Remote interface {
	GetViewPrefs(viewKey string) (*api.ViewPrefsRecord, error)
	PutViewPrefs(viewKey string, prefs json.RawMessage) error
}

// Store loads and saves per-view column preferences. Loads are
// fail-soft: remote first, then the local cache, then the view's
// defaults. Saves are debounced per view key, last write wins.
type Store struct {
	remote Remote
	cache  *Cache
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	lastErr error
}

type pendingSave struct {
	prefs listview.ColumnPrefs
	timer *time.Timer
}

// NewStore builds a store over the remote and an optional local cache
// (nil disables caching).
func NewStore(remote Remote, cache *Cache) *Store {
	return &Store{
		remote:  remote,
		cache:   cache,
		delay:   DefaultFlushDelay,
		pending: map[string]*pendingSave{},
	}
}

// WithFlushDelay overrides the debounce window. Used by tests.
func (s *Store) WithFlushDelay(d time.Duration) *Store {
	s.delay = d
	return s
}

// Load resolves the preferences for a view key. A remote or cache
// failure never blocks the list: the error is kept for the status bar
// and defaults are returned.
func (s *Store) Load(viewKey string, defaults listview.ColumnPrefs) listview.ColumnPrefs {
	if rec, err := s.remote.GetViewPrefs(viewKey); err == nil && rec != nil && len(rec.Prefs) > 0 {
		var p listview.ColumnPrefs
		if uerr := json.Unmarshal(rec.Prefs, &p); uerr == nil {
			if s.cache != nil {
				_ = s.cache.Put(viewKey, rec.Prefs)
			}
			return p
		}
	} else if err != nil {
		s.noteErr(fmt.Errorf("load prefs %s: %w", viewKey, err))
	}

	if s.cache != nil {
		if raw, ok, cerr := s.cache.Get(viewKey); cerr == nil && ok {
			var p listview.ColumnPrefs
			if uerr := json.Unmarshal(raw, &p); uerr == nil {
				return p
			}
		}
	}
	return defaults
}

// Save schedules a debounced push of the preferences for a view key.
// A sort equal to the view's default is stored as nil so the view
// keeps following default-sort changes.
func (s *Store) Save(viewKey string, prefs, defaults listview.ColumnPrefs) {
	if prefs.Sort != nil && defaults.Sort != nil && *prefs.Sort == *defaults.Sort {
		prefs.Sort = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[viewKey]; ok {
		p.prefs = prefs
		p.timer.Reset(s.delay)
		return
	}
	p := &pendingSave{prefs: prefs}
	p.timer = time.AfterFunc(s.delay, func() { s.flushKey(viewKey) })
	s.pending[viewKey] = p
}

// Flush pushes every pending save immediately. Called on quit.
func (s *Store) Flush() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pending))
	for k, p := range s.pending {
		p.timer.Stop()
		keys = append(keys, k)
	}
	s.mu.Unlock()
	for _, k := range keys {
		s.flushKey(k)
	}
}

// LastErr returns and clears the most recent preference failure.
func (s *Store) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.lastErr
	s.lastErr = nil
	return err
}

func (s *Store) flushKey(viewKey string) {
	s.mu.Lock()
	p, ok := s.pending[viewKey]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, viewKey)
	prefs := p.prefs
	s.mu.Unlock()

	raw, err := json.Marshal(prefs)
	if err != nil {
		s.noteErr(fmt.Errorf("save prefs %s: %w", viewKey, err))
		return
	}
	if s.cache != nil {
		_ = s.cache.Put(viewKey, raw)
	}
	if err := s.remote.PutViewPrefs(viewKey, raw); err != nil {
		s.noteErr(fmt.Errorf("save prefs %s: %w", viewKey, err))
	}
}

func (s *Store) noteErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
