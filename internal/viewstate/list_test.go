package viewstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
	"github.com/mrlokans/vocabdaily/internal/vocabulary/vocabularytest"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var (
	banana = entities.Word{ID: 1, Term: "banana", Description: "a fruit", Timestamp: 100, Color: entities.ColorRedPink}
	apple  = entities.Word{ID: 2, Term: "Apple", Description: "another fruit", Timestamp: 200, Color: entities.ColorBabyBlue}
)

func ids(words []entities.Word) []uint {
	out := make([]uint, len(words))
	for i, w := range words {
		out[i] = w.ID
	}
	return out
}

func newList(t *testing.T, store *vocabularytest.Store) *ListHolder {
	t.Helper()
	h, err := NewListHolder(context.Background(), vocabulary.NewUseCases(store))
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}

func assertWords(t *testing.T, h *ListHolder, want ...uint) {
	t.Helper()
	if want == nil {
		want = []uint{}
	}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, ids(h.State().Words))
	}, waitFor, tick, "want words %v, have %v", want, ids(h.State().Words))
}

func TestListHolder_StartsWithDefaultOrdering(t *testing.T) {
	h := newList(t, vocabularytest.NewStore(banana, apple))

	assert.Equal(t, vocabulary.DefaultOrdering, h.State().Ordering)
	assert.False(t, h.State().OrderPanelVisible)
	assertWords(t, h, 2, 1)
}

func TestListHolder_ChangeOrdering(t *testing.T) {
	store := vocabularytest.NewStore(banana, apple)
	h := newList(t, store)
	ctx := context.Background()
	assertWords(t, h, 2, 1)

	require.NoError(t, h.Handle(ctx, ChangeOrdering{vocabulary.Ordering{Field: vocabulary.FieldTerm, Direction: vocabulary.Ascending}}))
	assertWords(t, h, 2, 1)

	require.NoError(t, h.Handle(ctx, ChangeOrdering{vocabulary.Ordering{Field: vocabulary.FieldTerm, Direction: vocabulary.Descending}}))
	assertWords(t, h, 1, 2)
	assert.Equal(t, vocabulary.Ordering{Field: vocabulary.FieldTerm, Direction: vocabulary.Descending}, h.State().Ordering)

	assert.Equal(t, 3, store.SubscribeCalls())
	assert.Equal(t, 1, store.ActiveQueries(), "previous queries are cancelled")
}

func TestListHolder_ChangeOrdering_SameOrderingKeepsQuery(t *testing.T) {
	store := vocabularytest.NewStore(banana, apple)
	h := newList(t, store)
	ctx := context.Background()
	assertWords(t, h, 2, 1)

	before := h.State()
	queries := store.Queries()
	require.Len(t, queries, 1)

	for range 2 {
		require.NoError(t, h.Handle(ctx, ChangeOrdering{vocabulary.DefaultOrdering}))

		assert.Equal(t, before, h.State())
		require.Len(t, store.Queries(), 1)
		assert.Same(t, queries[0], store.Queries()[0], "live query is not replaced")
		assert.Equal(t, 1, store.SubscribeCalls())
		assert.Equal(t, 1, store.ActiveQueries())
	}
}

func TestListHolder_ChangeOrdering_SubscribeError(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h := newList(t, store)
	store.SubscribeErr = errors.New("storage unavailable")

	err := h.Handle(context.Background(), ChangeOrdering{vocabulary.Ordering{Field: vocabulary.FieldColor, Direction: vocabulary.Ascending}})

	assert.EqualError(t, err, "storage unavailable")
	assert.Equal(t, vocabulary.DefaultOrdering, h.State().Ordering)
}

func TestListHolder_FollowsStoreChanges(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h := newList(t, store)
	assertWords(t, h, 1)

	added := entities.Word{Term: "cherry", Description: "small fruit", Timestamp: 300}
	require.NoError(t, store.Insert(context.Background(), &added))

	assertWords(t, h, added.ID, 1)
}

func TestListHolder_DeleteAndRestore(t *testing.T) {
	store := vocabularytest.NewStore(banana, apple)
	h := newList(t, store)
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, DeleteEntry{apple}))
	assertWords(t, h, 1)

	tombstone, ok := h.Tombstone()
	require.True(t, ok)
	assert.Equal(t, apple, tombstone)

	require.NoError(t, h.Handle(ctx, RestoreEntry{}))
	assertWords(t, h, 2, 1)
	assert.Equal(t, []entities.Word{banana, apple}, store.Words(), "restored with the same id and fields")

	_, ok = h.Tombstone()
	assert.False(t, ok)

	require.NoError(t, h.Handle(ctx, RestoreEntry{}))
	assert.Equal(t, 1, store.InsertCalls(), "second restore does nothing")
}

func TestListHolder_RestoreWithoutDelete(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h := newList(t, store)

	require.NoError(t, h.Handle(context.Background(), RestoreEntry{}))

	assert.Equal(t, 0, store.InsertCalls())
}

func TestListHolder_OnlyLastDeleteIsRestorable(t *testing.T) {
	store := vocabularytest.NewStore(banana, apple)
	h := newList(t, store)
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, DeleteEntry{apple}))
	require.NoError(t, h.Handle(ctx, DeleteEntry{banana}))
	require.NoError(t, h.Handle(ctx, RestoreEntry{}))

	assertWords(t, h, 1)
	assert.Equal(t, []entities.Word{banana}, store.Words())
}

func TestListHolder_DeleteError(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h := newList(t, store)
	store.DeleteErr = errors.New("disk full")

	err := h.Handle(context.Background(), DeleteEntry{banana})

	assert.EqualError(t, err, "disk full")
	_, ok := h.Tombstone()
	assert.False(t, ok)
}

func TestListHolder_RestoreErrorKeepsTombstone(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h := newList(t, store)
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, DeleteEntry{banana}))
	store.InsertErr = errors.New("disk full")

	assert.EqualError(t, h.Handle(ctx, RestoreEntry{}), "disk full")
	_, ok := h.Tombstone()
	assert.True(t, ok)
}

func TestListHolder_ToggleOrderPanel(t *testing.T) {
	h := newList(t, vocabularytest.NewStore())
	ctx := context.Background()

	require.NoError(t, h.Handle(ctx, ToggleOrderPanel{}))
	assert.True(t, h.State().OrderPanelVisible)

	require.NoError(t, h.Handle(ctx, ToggleOrderPanel{}))
	assert.False(t, h.State().OrderPanelVisible)
}

func TestListHolder_StateIsACopy(t *testing.T) {
	h := newList(t, vocabularytest.NewStore(banana))
	assertWords(t, h, 1)

	s := h.State()
	s.Words[0].Term = "changed"

	assert.Equal(t, "banana", h.State().Words[0].Term)
}

// unorderedUseCases hands out the store's queries directly so tests can push
// snapshots into a query the holder already cancelled.
type unorderedUseCases struct {
	*vocabularytest.Store
}

func (u unorderedUseCases) GetWords(ctx context.Context, _ vocabulary.Ordering) (words.LiveQuery, error) {
	return u.Subscribe(ctx)
}

func (u unorderedUseCases) AddWord(ctx context.Context, word *entities.Word) error {
	return u.Insert(ctx, word)
}

func (u unorderedUseCases) DeleteWord(ctx context.Context, word entities.Word) error {
	return u.Delete(ctx, word)
}

func TestListHolder_DropsSnapshotsFromCancelledQuery(t *testing.T) {
	store := vocabularytest.NewStore(banana, apple)
	store.KeepCancelledOpen = true
	h, err := NewListHolder(context.Background(), unorderedUseCases{store})
	require.NoError(t, err)
	t.Cleanup(h.Close)
	assertWords(t, h, 1, 2)

	require.NoError(t, h.Handle(context.Background(), ChangeOrdering{vocabulary.Ordering{Field: vocabulary.FieldTerm, Direction: vocabulary.Ascending}}))
	assertWords(t, h, 1, 2)

	stale := store.Queries()[0]
	stale.Send([]entities.Word{{ID: 99, Term: "stale"}})

	assert.Eventually(t, func() bool { return len(stale.C()) == 0 }, waitFor, tick)
	assert.Never(t, func() bool {
		return assert.ObjectsAreEqual([]uint{99}, ids(h.State().Words))
	}, 50*time.Millisecond, tick)
}

func TestListHolder_CloseCancelsQuery(t *testing.T) {
	store := vocabularytest.NewStore(banana)
	h, err := NewListHolder(context.Background(), vocabulary.NewUseCases(store))
	require.NoError(t, err)

	h.Close()

	assert.Equal(t, 0, store.ActiveQueries())
}

func TestNewListHolder_SubscribeError(t *testing.T) {
	store := vocabularytest.NewStore()
	store.SubscribeErr = errors.New("storage unavailable")

	_, err := NewListHolder(context.Background(), vocabulary.NewUseCases(store))

	assert.EqualError(t, err, "storage unavailable")
}
