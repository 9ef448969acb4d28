package cli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/vocabdaily/internal/database"
	"github.com/mrlokans/vocabdaily/internal/database/words"
)

// newFlagSet returns a flag set that reports errors instead of exiting and
// prints usage to errOut.
func newFlagSet(name, summary string, errOut io.Writer, examples ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(errOut, "%s\n\n", summary)
		fmt.Fprintf(errOut, "Options:\n")
		fs.PrintDefaults()
		if len(examples) > 0 {
			fmt.Fprintf(errOut, "\nExamples:\n")
			for _, example := range examples {
				fmt.Fprintf(errOut, "  %s %s\n", os.Args[0], example)
			}
		}
	}
	return fs
}

// openRepository opens an existing word database.
func openRepository(path string) (*database.Database, *words.Repository, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("database does not exist: %s", path)
	}

	db, err := openOrCreate(path)
	if err != nil {
		return nil, nil, err
	}
	return db, newRepository(db), nil
}

func openOrCreate(path string) (*database.Database, error) {
	db, err := database.NewDatabase(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newRepository(db *database.Database) *words.Repository {
	return words.NewRepository(db.DB)
}
