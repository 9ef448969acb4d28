package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/vocabdaily/internal/config"
	"github.com/mrlokans/vocabdaily/internal/exporters"
)

type ExportCommand struct {
	DatabasePath string
	OutputDir    string
	FileName     string

	Out    io.Writer
	ErrOut io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{Out: os.Stdout, ErrOut: os.Stderr}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := newFlagSet("export", "Write all words to a markdown file once.", cmd.ErrOut,
		"export --output ./vault/vocabulary",
		"export --output ./vault --file words.md --db ./my-words.db",
	)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVarP(&cmd.OutputDir, "output", "o", "", "Directory to write the markdown file to (required)")
	fs.StringVar(&cmd.FileName, "file", config.DefaultExportFileName, "Name of the markdown file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required")
	}
	return nil
}

func (cmd *ExportCommand) Run() error {
	db, repo, err := openRepository(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	exporter := exporters.NewDatabaseMarkdownExporter(repo, exporters.NewMarkdownExporter(cmd.OutputDir, cmd.FileName))
	result, err := exporter.ExportAll(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Exported %d words to %s\n", result.WordsExported, result.Path)
	return nil
}
