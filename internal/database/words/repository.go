// Package words provides database operations for vocabulary words together
// with a live query that re-delivers the full word list after every write.
//
// # Usage
//
//	repo := words.NewRepository(db)
//	sub, err := repo.Subscribe(ctx)
//	defer sub.Cancel()
//
//	_ = repo.Insert(ctx, &entities.Word{Term: "cat", Description: "an animal"})
//	snapshot := <-sub.C()
package words

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/vocabdaily/internal/entities"
)

// ErrNotFound is returned by GetByID when no word has the requested id.
var ErrNotFound = errors.New("word not found")

// LiveQuery delivers complete word snapshots until cancelled. C is closed
// once Cancel returns, and nothing is delivered after that.
type LiveQuery interface {
	C() <-chan []entities.Word
	Cancel()
}

var _ LiveQuery = (*Subscription)(nil)

// Repository handles all word database operations.
type Repository struct {
	db *gorm.DB

	// writeMu serializes writes with the snapshot they publish so that
	// subscribers observe snapshots in commit order.
	writeMu sync.Mutex

	subsMu sync.Mutex
	subs   map[uuid.UUID]*Subscription
}

// NewRepository creates a new word repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:   db,
		subs: make(map[uuid.UUID]*Subscription),
	}
}

// Insert stores a word. A zero ID lets the store assign one; a non-zero ID
// replaces any existing record with that ID.
func (r *Repository) Insert(ctx context.Context, word *entities.Word) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(word).Error
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}

	r.publish(ctx)
	return nil
}

// Delete removes the record matching word.ID. Missing records are ignored.
func (r *Repository) Delete(ctx context.Context, word entities.Word) error {
	if word.IsNew() {
		return nil
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	result := r.db.WithContext(ctx).Delete(&entities.Word{}, word.ID)
	if result.Error != nil {
		return fmt.Errorf("delete word %d: %w", word.ID, result.Error)
	}

	if result.RowsAffected > 0 {
		r.publish(ctx)
	}
	return nil
}

// GetByID retrieves a word by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Word, error) {
	var word entities.Word
	err := r.db.WithContext(ctx).First(&word, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word %d: %w", id, err)
	}
	return &word, nil
}

// All returns every word in insertion order.
func (r *Repository) All(ctx context.Context) ([]entities.Word, error) {
	words := make([]entities.Word, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&words).Error
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// Subscribe starts a live query. The current word list is delivered
// immediately and a fresh complete list follows every committed write.
// The subscription ends when Cancel is called or ctx is done.
func (r *Repository) Subscribe(ctx context.Context) (LiveQuery, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snapshot, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		id:   uuid.New(),
		ch:   make(chan []entities.Word, 1),
		repo: r,
	}
	sub.deliver(snapshot)

	r.subsMu.Lock()
	r.subs[sub.id] = sub
	r.subsMu.Unlock()

	stop := context.AfterFunc(ctx, sub.Cancel)
	sub.mu.Lock()
	sub.stopAfter = stop
	sub.mu.Unlock()

	return sub, nil
}

// Subscribers returns the number of active live queries.
func (r *Repository) Subscribers() int {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	return len(r.subs)
}

// publish must be called with writeMu held.
func (r *Repository) publish(ctx context.Context) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	if len(r.subs) == 0 {
		return
	}

	// The write is already committed; deliver even if the caller gave up.
	snapshot, err := r.All(context.WithoutCancel(ctx))
	if err != nil {
		log.Printf("[LIVE] Failed to load snapshot for %d subscribers: %v", len(r.subs), err)
		return
	}

	for _, sub := range r.subs {
		sub.deliver(append([]entities.Word(nil), snapshot...))
	}
}

func (r *Repository) unsubscribe(id uuid.UUID) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	delete(r.subs, id)
}
