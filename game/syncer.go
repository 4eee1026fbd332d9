/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
)

// StateFetcher returns the raw /State document for a game.
type StateFetcher interface {
	State(ctx context.Context, gameID string) (json.RawMessage, error)
}

// Update is published to subscribers after each fetch that is applied. On
// failure Err is set and Snapshot is the one still being shown.
type Update struct {
	Seq      uint64
	Snapshot *Snapshot
	Err      error
}

// Syncer keeps the freshest snapshot of one game. A fetch happens once when
// Run starts and once per Trigger; there is no timer. Fetches may overlap,
// so each is numbered and a reply older than the latest applied one is
// dropped.
type Syncer struct {
	fetcher StateFetcher
	gameID  string
	logger  Logger

	refresh chan struct{}
	counter atomic.Uint64

	mu        sync.RWMutex
	issued    uint64
	applied   uint64
	snapshot  *Snapshot
	lastErr   error
	subs      map[chan Update]struct{}
	observers []func(*Snapshot)
}

func NewSyncer(fetcher StateFetcher, gameID string, logger Logger) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		gameID:  gameID,
		logger:  logger,
		refresh: make(chan struct{}, 64),
		subs:    make(map[chan Update]struct{}),
	}
}

// Trigger bumps the refresh counter and asks Run for one more fetch. It never
// blocks, and returns the new counter value.
func (s *Syncer) Trigger() uint64 {
	n := s.counter.Add(1)

	select {
	case s.refresh <- struct{}{}:
	default:
		// Run is far behind; the queued fetches will pick up this change.
		s.logger.Printf("SYNC: Refresh queue full for %s, dropping trigger %d", s.gameID, n)
	}

	return n
}

// RefreshCount is the number of triggers so far.
func (s *Syncer) RefreshCount() uint64 {
	return s.counter.Load()
}

// Run fetches immediately and then once per trigger until ctx is done.
// In-flight fetches are abandoned on return without reporting an error.
func (s *Syncer) Run(ctx context.Context) error {
	if s.gameID == "" {
		return ErrNotSeated
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	start := func() {
		seq := s.next()
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.fetch(ctx, seq)
		}()
	}

	start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.refresh:
			start()
		}
	}
}

// FetchNow fetches synchronously and returns the snapshot in effect
// afterwards.
func (s *Syncer) FetchNow(ctx context.Context) (*Snapshot, error) {
	if s.gameID == "" {
		return nil, ErrNotSeated
	}

	seq := s.next()
	snap, err := s.load(ctx)
	s.apply(seq, snap, err)
	if err != nil {
		return nil, err
	}

	return s.Snapshot(), nil
}

func (s *Syncer) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	return s.issued
}

func (s *Syncer) load(ctx context.Context) (*Snapshot, error) {
	raw, err := s.fetcher.State(ctx, s.gameID)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(raw)
}

func (s *Syncer) fetch(ctx context.Context, seq uint64) {
	snap, err := s.load(ctx)
	if ctx.Err() != nil {
		return
	}
	s.apply(seq, snap, err)
}

func (s *Syncer) apply(seq uint64, snap *Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		s.logger.Printf("SYNC: Discarding stale fetch %d for %s (applied %d)", seq, s.gameID, s.applied)
		return
	}

	if err != nil {
		s.lastErr = err
		s.logger.Printf("SYNC: Fetch %d for %s failed: %v", seq, s.gameID, err)
		s.publishLocked(Update{Seq: seq, Snapshot: s.snapshot, Err: err})
		return
	}

	s.applied = seq
	s.snapshot = snap
	s.lastErr = nil

	for _, observe := range s.observers {
		observe(snap)
	}

	s.logger.Printf("SYNC: Applied fetch %d for %s", seq, s.gameID)
	s.publishLocked(Update{Seq: seq, Snapshot: snap})
}

// publishLocked hands u to every subscriber without blocking. A subscriber
// that has not read its previous update loses it in favour of this one.
func (s *Syncer) publishLocked(u Update) {
	for ch := range s.subs {
		select {
		case ch <- u:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- u:
		default:
		}
	}
}

// Snapshot returns the latest applied snapshot, or nil before the first
// successful fetch. Callers must not modify it.
func (s *Syncer) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// LastError returns the error from the most recent fetch, cleared by the
// next successful one.
func (s *Syncer) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastErr
}

func (s *Syncer) GameID() string {
	return s.gameID
}

// Subscribe returns a channel of updates and a function that closes it.
func (s *Syncer) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// OnSnapshot registers fn to run, under the syncer's lock, each time a new
// snapshot is applied. fn must not call back into the Syncer.
func (s *Syncer) OnSnapshot(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
}
