package exporters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/utils"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

const defaultFileName = "vocabulary.md"

// ErrExportDirNotConfigured is returned when no export directory is set.
var ErrExportDirNotConfigured = errors.New("export directory is not configured")

var exportOrdering = vocabulary.Ordering{Field: vocabulary.FieldTerm, Direction: vocabulary.Ascending}

type MarkdownExporter struct {
	ExportDir string
	FileName  string
	now       func() time.Time
}

func NewMarkdownExporter(exportDir, fileName string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir: exportDir,
		FileName:  utils.SanitizeFilename(fileName, defaultFileName),
		now:       time.Now,
	}
}

// Path is where Export writes the vocabulary file.
func (exporter *MarkdownExporter) Path() string {
	return filepath.Join(exporter.ExportDir, exporter.FileName)
}

func (exporter *MarkdownExporter) ensureDir() error {
	if exporter.ExportDir == "" {
		return ErrExportDirNotConfigured
	}
	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

// Export replaces the vocabulary file with the given words. Readers never see
// a partially written file.
func (exporter *MarkdownExporter) Export(words []entities.Word) (ExportResult, error) {
	if err := exporter.ensureDir(); err != nil {
		return ExportResult{}, err
	}

	content := GenerateMarkdown(words, exporter.now())
	path := exporter.Path()
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write vocabulary file: %w", err)
	}

	return ExportResult{WordsExported: len(words), Path: path}, nil
}

// GenerateMarkdown renders words sorted by term, one section per word.
func GenerateMarkdown(words []entities.Word, createdAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: vocabulary\n")
	fmt.Fprintf(&builder, "created_at: %s\n", createdAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "count: %d\n", len(words))
	fmt.Fprintf(&builder, "tags: vocabulary, words\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# Vocabulary\n\n")

	for _, word := range vocabulary.Order(words, exportOrdering) {
		fmt.Fprintf(&builder, "## %s\n\n", strings.TrimSpace(word.Term))
		fmt.Fprintf(&builder, "%s\n\n", strings.TrimSpace(word.Description))
		fmt.Fprintf(&builder, "- color: `%s`\n", utils.ColorToHexARGB(word.Color))
		fmt.Fprintf(&builder, "- added: %s\n\n", word.Time().UTC().Format(time.RFC3339))
	}

	return builder.String()
}
