package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/vocabdaily/internal/config"
	"github.com/mrlokans/vocabdaily/internal/utils"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

type ListCommand struct {
	DatabasePath string
	Order        string
	Descending   bool

	Out    io.Writer
	ErrOut io.Writer

	ordering vocabulary.Ordering
}

func NewListCommand() *ListCommand {
	return &ListCommand{Out: os.Stdout, ErrOut: os.Stderr}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("list", "Print every stored word in the chosen order.", cmd.ErrOut,
		"list",
		"list --order term",
		"list --order timestamp --desc --db ./my-words.db",
	)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Order, "order", string(vocabulary.FieldTimestamp), "Sort field: term, timestamp, color or description")
	fs.BoolVar(&cmd.Descending, "desc", false, "Sort in descending order")

	if err := fs.Parse(args); err != nil {
		return err
	}

	direction := vocabulary.Ascending
	if cmd.Descending {
		direction = vocabulary.Descending
	}

	ordering, err := vocabulary.ParseOrdering(cmd.Order, string(direction))
	if err != nil {
		fs.Usage()
		return err
	}
	cmd.ordering = ordering
	return nil
}

func (cmd *ListCommand) Run() error {
	db, repo, err := openRepository(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	all, err := repo.All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}

	if len(all) == 0 {
		fmt.Fprintf(cmd.Out, "No words yet\n")
		return nil
	}

	for i, word := range vocabulary.Order(all, cmd.ordering) {
		fmt.Fprintf(cmd.Out, "%d. %s - %s [%s, %s]\n",
			i+1,
			word.Term,
			word.Description,
			utils.ColorToHexARGB(word.Color),
			word.Time().Format(time.DateOnly))
	}
	fmt.Fprintf(cmd.Out, "\n%d words (ordered by %s)\n", len(all), cmd.ordering)
	return nil
}
