package memory

import (
	"sync"

	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	"github.com/fbsn11/team-management-app/internal/domain/team"
)

// Document is the whole application state, persisted as one value.
type Document struct {
	Teams   []team.Team     `json:"teams"`
	Matches []match.Match   `json:"matches"`
	Players []player.Player `json:"players"`
	Lineups []lineup.Lineup `json:"lineups"`
}

func (d Document) Clone() Document {
	out := Document{
		Teams:   append([]team.Team{}, d.Teams...),
		Players: append([]player.Player{}, d.Players...),
		Matches: make([]match.Match, 0, len(d.Matches)),
		Lineups: make([]lineup.Lineup, 0, len(d.Lineups)),
	}
	for _, m := range d.Matches {
		out.Matches = append(out.Matches, m.Clone())
	}
	for _, l := range d.Lineups {
		out.Lineups = append(out.Lineups, l.Clone())
	}
	return out
}

type Collection string

const (
	CollectionTeams   Collection = "teams"
	CollectionMatches Collection = "matches"
	CollectionPlayers Collection = "players"
	CollectionLineups Collection = "lineups"
)

// Change describes one committed mutation. MatchIDs lists the matches
// whose lineups may have changed.
type Change struct {
	Collection Collection
	MatchIDs   []string
}

// PersistFunc receives the document after every mutation while the store
// is still locked. It must not retain doc after returning.
type PersistFunc func(doc Document)

// Store owns the document shared by the repositories of this package.
type Store struct {
	mu      sync.RWMutex
	doc     Document
	persist PersistFunc

	subsMu  sync.RWMutex
	subs    map[int]func(Change)
	nextSub int
}

func NewStore(doc Document) *Store {
	return &Store{doc: doc.Clone(), subs: make(map[int]func(Change))}
}

func (s *Store) SetPersister(fn PersistFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist = fn
}

// Subscribe registers fn for every change. Callbacks run synchronously
// after the mutation is visible to readers.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

func (s *Store) read(fn func(doc *Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.doc)
}

// mutate applies fn under the write lock. When fn reports a change the
// document is handed to the persister and subscribers are notified.
func (s *Store) mutate(fn func(doc *Document) (Change, bool)) {
	s.mu.Lock()
	change, changed := fn(&s.doc)
	if changed && s.persist != nil {
		s.persist(s.doc)
	}
	s.mu.Unlock()

	if changed {
		s.notify(change)
	}
}

func (s *Store) notify(change Change) {
	s.subsMu.RLock()
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}
