package words

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/vocabdaily/internal/entities"
)

// Subscription is a live query over all words. Only the most recent
// undelivered snapshot is kept; a slow reader skips intermediate ones.
type Subscription struct {
	id   uuid.UUID
	ch   chan []entities.Word
	repo *Repository

	mu        sync.Mutex
	closed    bool
	stopAfter func() bool
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// C delivers complete word snapshots. It is closed after Cancel.
func (s *Subscription) C() <-chan []entities.Word {
	return s.ch
}

// Cancel stops deliveries and releases the subscription. Safe to call more
// than once.
func (s *Subscription) Cancel() {
	s.repo.unsubscribe(s.id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.stopAfter != nil {
		s.stopAfter()
	}
	close(s.ch)
}

func (s *Subscription) deliver(snapshot []entities.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Replace a snapshot the reader has not picked up yet.
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snapshot
}
