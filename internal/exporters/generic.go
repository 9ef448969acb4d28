package exporters

import "github.com/mrlokans/vocabdaily/internal/entities"

type WordExporter interface {
	Export(words []entities.Word) (ExportResult, error)
}

type ExportResult struct {
	WordsExported int    `json:"words_exported"`
	Path          string `json:"path"`
}
