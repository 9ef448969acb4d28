package exporters

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
)

// WordLister reads every stored word. words.Repository implements it.
type WordLister interface {
	All(ctx context.Context) ([]entities.Word, error)
}

// DatabaseMarkdownExporter exports the whole word database to markdown.
type DatabaseMarkdownExporter struct {
	words            WordLister
	markdownExporter WordExporter
}

func NewDatabaseMarkdownExporter(lister WordLister, markdownExporter WordExporter) *DatabaseMarkdownExporter {
	return &DatabaseMarkdownExporter{
		words:            lister,
		markdownExporter: markdownExporter,
	}
}

func (exporter *DatabaseMarkdownExporter) ExportAll(ctx context.Context) (ExportResult, error) {
	all, err := exporter.words.All(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load words: %w", err)
	}

	result, err := exporter.markdownExporter.Export(all)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to export to markdown: %w", err)
	}

	log.Printf("[EXPORT] Exported %d words to %s", result.WordsExported, result.Path)
	return result, nil
}

var (
	_ WordExporter = (*MarkdownExporter)(nil)
	_ WordLister   = (*words.Repository)(nil)
)
