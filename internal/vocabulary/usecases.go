package vocabulary

import (
	"context"
	"errors"
	"sync"

	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
)

// WordStore is the persistence contract the use cases depend on.
// words.Repository implements it.
type WordStore interface {
	Subscribe(ctx context.Context) (words.LiveQuery, error)
	GetByID(ctx context.Context, id uint) (*entities.Word, error)
	Insert(ctx context.Context, word *entities.Word) error
	Delete(ctx context.Context, word entities.Word) error
}

var _ WordStore = (*words.Repository)(nil)

// UseCases groups the word operations offered to the view-state holders.
type UseCases struct {
	store     WordStore
	validator *Validator
}

func NewUseCases(store WordStore) *UseCases {
	return &UseCases{
		store:     store,
		validator: NewValidator(),
	}
}

// GetWords subscribes to all words and applies o to every snapshot.
func (u *UseCases) GetWords(ctx context.Context, o Ordering) (words.LiveQuery, error) {
	source, err := u.store.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	q := &orderedQuery{
		source: source,
		out:    make(chan []entities.Word, 1),
	}
	go q.run(o)
	return q, nil
}

// GetWord returns the word with the given id, or nil when there is none.
func (u *UseCases) GetWord(ctx context.Context, id uint) (*entities.Word, error) {
	word, err := u.store.GetByID(ctx, id)
	if errors.Is(err, words.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// AddWord validates and stores word. A *ValidationError means nothing was
// written.
func (u *UseCases) AddWord(ctx context.Context, word *entities.Word) error {
	if err := u.validator.Validate(*word); err != nil {
		return err
	}
	return u.store.Insert(ctx, word)
}

func (u *UseCases) DeleteWord(ctx context.Context, word entities.Word) error {
	return u.store.Delete(ctx, word)
}

// orderedQuery forwards sorted snapshots from a store subscription.
type orderedQuery struct {
	source words.LiveQuery
	out    chan []entities.Word

	mu     sync.Mutex
	closed bool
}

func (q *orderedQuery) C() <-chan []entities.Word {
	return q.out
}

func (q *orderedQuery) Cancel() {
	q.source.Cancel()
	q.close()
}

func (q *orderedQuery) run(o Ordering) {
	defer q.close()
	for snapshot := range q.source.C() {
		q.forward(Order(snapshot, o))
	}
}

func (q *orderedQuery) forward(sorted []entities.Word) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	select {
	case <-q.out:
	default:
	}
	q.out <- sorted
}

func (q *orderedQuery) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.out)
}
