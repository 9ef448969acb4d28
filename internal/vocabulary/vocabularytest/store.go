// Package vocabularytest provides an in-memory word store for tests of
// code built on vocabulary.UseCases.
package vocabularytest

import (
	"context"
	"slices"
	"sync"

	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
)

// Store is an in-memory vocabulary.WordStore that counts calls and lets
// tests inject failures and control live query deliveries.
type Store struct {
	mu     sync.Mutex
	words  []entities.Word
	nextID uint
	live   []*Query

	subscribeCalls int
	insertCalls    int
	deleteCalls    int
	getCalls       int

	// Failures returned by the matching operation when set.
	SubscribeErr error
	InsertErr    error
	DeleteErr    error
	GetErr       error

	// GetGate, when set, blocks GetByID until it is closed.
	GetGate chan struct{}

	// KeepCancelledOpen leaves a cancelled query's channel open so tests can
	// push late snapshots with Query.Send.
	KeepCancelledOpen bool
}

func NewStore(seed ...entities.Word) *Store {
	s := &Store{}
	for _, w := range seed {
		if w.ID == 0 {
			s.nextID++
			w.ID = s.nextID
		}
		if w.ID > s.nextID {
			s.nextID = w.ID
		}
		s.words = append(s.words, w)
	}
	return s
}

func (s *Store) Subscribe(ctx context.Context) (words.LiveQuery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribeCalls++
	if s.SubscribeErr != nil {
		return nil, s.SubscribeErr
	}

	q := &Query{ch: make(chan []entities.Word, 1), keepOpen: s.KeepCancelledOpen}
	q.deliver(slices.Clone(s.words))
	s.live = append(s.live, q)
	return q, nil
}

func (s *Store) GetByID(ctx context.Context, id uint) (*entities.Word, error) {
	if s.GetGate != nil {
		select {
		case <-s.GetGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, w := range s.words {
		if w.ID == id {
			found := w
			return &found, nil
		}
	}
	return nil, words.ErrNotFound
}

func (s *Store) Insert(ctx context.Context, word *entities.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertCalls++
	if s.InsertErr != nil {
		return s.InsertErr
	}

	if word.ID == 0 {
		s.nextID++
		word.ID = s.nextID
	} else if word.ID > s.nextID {
		s.nextID = word.ID
	}

	replaced := false
	for i := range s.words {
		if s.words[i].ID == word.ID {
			s.words[i] = *word
			replaced = true
			break
		}
	}
	if !replaced {
		s.words = append(s.words, *word)
		slices.SortFunc(s.words, func(a, b entities.Word) int {
			return int(a.ID) - int(b.ID)
		})
	}

	s.publishLocked()
	return nil
}

func (s *Store) Delete(ctx context.Context, word entities.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	before := len(s.words)
	s.words = slices.DeleteFunc(s.words, func(w entities.Word) bool {
		return w.ID == word.ID
	})
	if len(s.words) != before {
		s.publishLocked()
	}
	return nil
}

// Words returns a copy of the stored words in id order.
func (s *Store) Words() []entities.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.words)
}

func (s *Store) SubscribeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribeCalls
}

func (s *Store) InsertCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCalls
}

func (s *Store) DeleteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCalls
}

func (s *Store) GetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// ActiveQueries returns the number of live queries not yet cancelled.
func (s *Store) ActiveQueries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.live {
		if !q.isCancelled() {
			n++
		}
	}
	return n
}

// Queries returns every live query handed out so far, oldest first.
func (s *Store) Queries() []*Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.live)
}

func (s *Store) publishLocked() {
	for _, q := range s.live {
		q.deliver(slices.Clone(s.words))
	}
}

// Query is the fake live query. By default Cancel closes C like the real
// store does; with Store.KeepCancelledOpen it stays open and Send keeps
// delivering, simulating a snapshot already in flight.
type Query struct {
	ch       chan []entities.Word
	keepOpen bool

	mu        sync.Mutex
	cancelled bool
	closed    bool
}

func (q *Query) C() <-chan []entities.Word {
	return q.ch
}

func (q *Query) Cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancelled = true
	if !q.keepOpen && !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Send pushes a snapshot even after cancellation, unless C is closed.
func (q *Query) Send(snapshot []entities.Word) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.replace(snapshot)
}

func (q *Query) deliver(snapshot []entities.Word) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancelled {
		return
	}
	q.replace(snapshot)
}

func (q *Query) replace(snapshot []entities.Word) {
	select {
	case <-q.ch:
	default:
	}
	q.ch <- snapshot
}

func (q *Query) isCancelled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cancelled
}
