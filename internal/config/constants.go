package config

const (
	// DefaultDatabasePath is the default path for the word database
	DefaultDatabasePath = "./vocabdaily.db"

	// DefaultExportFileName is the markdown file written by exports
	DefaultExportFileName = "vocabulary.md"
)
