package viewstate

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

// ListUseCases is what the list holder needs from vocabulary.UseCases.
type ListUseCases interface {
	GetWords(ctx context.Context, o vocabulary.Ordering) (words.LiveQuery, error)
	AddWord(ctx context.Context, word *entities.Word) error
	DeleteWord(ctx context.Context, word entities.Word) error
}

var _ ListUseCases = (*vocabulary.UseCases)(nil)

type ListState struct {
	Words             []entities.Word     `json:"words"`
	Ordering          vocabulary.Ordering `json:"ordering"`
	OrderPanelVisible bool                `json:"order_panel_visible"`
}

// ListEvent is one of ChangeOrdering, DeleteEntry, RestoreEntry or
// ToggleOrderPanel.
type ListEvent interface {
	listEvent()
}

type ChangeOrdering struct {
	Ordering vocabulary.Ordering
}

// DeleteEntry deletes a word and keeps it as the only undo candidate.
type DeleteEntry struct {
	Word entities.Word
}

// RestoreEntry re-inserts the most recently deleted word, if any.
type RestoreEntry struct{}

type ToggleOrderPanel struct{}

func (ChangeOrdering) listEvent()   {}
func (DeleteEntry) listEvent()      {}
func (RestoreEntry) listEvent()     {}
func (ToggleOrderPanel) listEvent() {}

type ListHolder struct {
	uc ListUseCases

	// ctx bounds every live query the holder opens; cancel ends them all.
	ctx    context.Context
	cancel context.CancelFunc

	events sync.Mutex // serializes Handle

	mu        sync.Mutex
	state     ListState
	tombstone *entities.Word
	query     words.LiveQuery
	gen       uint64
}

// NewListHolder starts listening to all words in the default ordering.
func NewListHolder(ctx context.Context, uc ListUseCases) (*ListHolder, error) {
	ctx, cancel := context.WithCancel(ctx)
	h := &ListHolder{
		uc:     uc,
		ctx:    ctx,
		cancel: cancel,
		state: ListState{
			Words:    []entities.Word{},
			Ordering: vocabulary.DefaultOrdering,
		},
	}

	h.mu.Lock()
	err := h.subscribeLocked(vocabulary.DefaultOrdering)
	h.mu.Unlock()
	if err != nil {
		cancel()
		return nil, err
	}
	return h, nil
}

// State returns a copy of the current list state.
func (h *ListHolder) State() ListState {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.state
	s.Words = slices.Clone(h.state.Words)
	return s
}

// Tombstone returns the word a RestoreEntry would bring back.
func (h *ListHolder) Tombstone() (entities.Word, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tombstone == nil {
		return entities.Word{}, false
	}
	return *h.tombstone, true
}

// Handle applies a UI event. Store failures are returned unchanged.
func (h *ListHolder) Handle(ctx context.Context, event ListEvent) error {
	h.events.Lock()
	defer h.events.Unlock()

	switch ev := event.(type) {
	case ChangeOrdering:
		return h.changeOrdering(ev.Ordering)
	case DeleteEntry:
		return h.delete(ctx, ev.Word)
	case RestoreEntry:
		return h.restore(ctx)
	case ToggleOrderPanel:
		h.mu.Lock()
		h.state.OrderPanelVisible = !h.state.OrderPanelVisible
		h.mu.Unlock()
		return nil
	default:
		panic(fmt.Sprintf("viewstate: unhandled list event %T", event))
	}
}

// Close cancels the live query. The holder must not be used afterwards.
func (h *ListHolder) Close() {
	h.mu.Lock()
	if h.query != nil {
		h.query.Cancel()
		h.query = nil
	}
	h.gen++
	h.mu.Unlock()

	h.cancel()
}

func (h *ListHolder) changeOrdering(o vocabulary.Ordering) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state.Ordering == o && h.query != nil {
		return nil
	}
	return h.subscribeLocked(o)
}

func (h *ListHolder) delete(ctx context.Context, word entities.Word) error {
	if err := h.uc.DeleteWord(ctx, word); err != nil {
		return err
	}

	h.mu.Lock()
	h.tombstone = &word
	h.mu.Unlock()
	return nil
}

func (h *ListHolder) restore(ctx context.Context) error {
	h.mu.Lock()
	tombstone := h.tombstone
	h.mu.Unlock()

	if tombstone == nil {
		return nil
	}

	word := *tombstone
	if err := h.uc.AddWord(ctx, &word); err != nil {
		return err
	}

	h.mu.Lock()
	h.tombstone = nil
	h.mu.Unlock()
	return nil
}

// subscribeLocked replaces the live query. Must be called with mu held.
func (h *ListHolder) subscribeLocked(o vocabulary.Ordering) error {
	if h.query != nil {
		h.query.Cancel()
		h.query = nil
	}
	h.gen++

	q, err := h.uc.GetWords(h.ctx, o)
	if err != nil {
		return err
	}

	h.query = q
	h.state.Ordering = o
	h.state.Words = vocabulary.Order(h.state.Words, o)

	go h.consume(h.gen, q)
	return nil
}

func (h *ListHolder) consume(gen uint64, q words.LiveQuery) {
	for snapshot := range q.C() {
		h.mu.Lock()
		if gen != h.gen {
			h.mu.Unlock()
			return
		}
		h.state.Words = snapshot
		h.mu.Unlock()
	}
}
