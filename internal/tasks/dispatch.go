package tasks

import (
	"context"
	"fmt"

	"github.com/mrlokans/vocabdaily/internal/exporters"
)

// ExportOutcome tells the caller how an export request was handled: either
// queued as TaskID or finished inline with Result.
type ExportOutcome struct {
	TaskID string                  `json:"task_id,omitempty"`
	Result *exporters.ExportResult `json:"result,omitempty"`
}

// Queued reports whether the export went to the task queue.
func (o ExportOutcome) Queued() bool {
	return o.TaskID != ""
}

// ExportDispatcher queues exports when a task client is available and runs
// them inline otherwise.
type ExportDispatcher struct {
	client   *Client
	exporter VocabularyExporter
}

// NewExportDispatcher returns a dispatcher; client may be nil.
func NewExportDispatcher(client *Client, exporter VocabularyExporter) *ExportDispatcher {
	return &ExportDispatcher{client: client, exporter: exporter}
}

func (d *ExportDispatcher) Dispatch(ctx context.Context, trigger string) (ExportOutcome, error) {
	if d.client != nil {
		ids, err := d.client.Add(ExportVocabularyTask{Trigger: trigger}).Save()
		if err != nil {
			return ExportOutcome{}, fmt.Errorf("enqueue export: %w", err)
		}
		return ExportOutcome{TaskID: ids[0]}, nil
	}

	result, err := d.exporter.ExportAll(ctx)
	if err != nil {
		return ExportOutcome{}, err
	}
	return ExportOutcome{Result: &result}, nil
}
