package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/vocabdaily/internal/exporters"
)

// VocabularyExporter writes every stored word to the export file.
type VocabularyExporter interface {
	ExportAll(ctx context.Context) (exporters.ExportResult, error)
}

// ExportVocabularyTask regenerates the markdown export.
type ExportVocabularyTask struct {
	// Trigger records what requested the export, e.g. "api" or "schedule".
	Trigger string `json:"trigger,omitempty"`
}

func (t ExportVocabularyTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_vocabulary",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func ExportVocabularyProcessor(exporter VocabularyExporter) backlite.QueueProcessor[ExportVocabularyTask] {
	return func(ctx context.Context, task ExportVocabularyTask) error {
		if exporter == nil {
			return fmt.Errorf("vocabulary exporter not configured")
		}

		result, err := exporter.ExportAll(ctx)
		if err != nil {
			return fmt.Errorf("export vocabulary: %w", err)
		}

		log.Printf("[TASK] Exported %d words (trigger: %s)", result.WordsExported, task.Trigger)
		return nil
	}
}

func NewExportVocabularyQueue(exporter VocabularyExporter) backlite.Queue {
	return backlite.NewQueue(ExportVocabularyProcessor(exporter))
}

var _ VocabularyExporter = (*exporters.DatabaseMarkdownExporter)(nil)
