package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDispatcher_Inline(t *testing.T) {
	exporter := &fakeExporter{calls: make(chan struct{}, 1)}

	outcome, err := NewExportDispatcher(nil, exporter).Dispatch(context.Background(), "cli")
	require.NoError(t, err)

	assert.False(t, outcome.Queued())
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 3, outcome.Result.WordsExported)
	assert.Len(t, exporter.calls, 1)
}

func TestExportDispatcher_InlineError(t *testing.T) {
	exportErr := errors.New("disk full")
	exporter := &fakeExporter{calls: make(chan struct{}, 1), err: exportErr}

	_, err := NewExportDispatcher(nil, exporter).Dispatch(context.Background(), "cli")

	assert.ErrorIs(t, err, exportErr)
}

func TestExportDispatcher_Queued(t *testing.T) {
	client := newTestClient(t)
	exporter := &fakeExporter{calls: make(chan struct{}, 1)}
	client.Register(NewExportVocabularyQueue(exporter))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	outcome, err := NewExportDispatcher(client, exporter).Dispatch(context.Background(), "api")
	require.NoError(t, err)

	assert.True(t, outcome.Queued())
	assert.Nil(t, outcome.Result)

	select {
	case <-exporter.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("queued export did not run")
	}
}
