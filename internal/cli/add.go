package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/vocabdaily/internal/config"
	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/utils"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

type AddCommand struct {
	DatabasePath string
	Term         string
	Description  string
	Color        string

	Out    io.Writer
	ErrOut io.Writer

	color int32
}

func NewAddCommand() *AddCommand {
	return &AddCommand{Out: os.Stdout, ErrOut: os.Stderr}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add", "Add a word. A random palette color is used unless --color is given.", cmd.ErrOut,
		`add --term serendipity --description "a happy accident"`,
		`add -t ephemeral -d "lasting a short time" --color "#FFE7ED9B"`,
	)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVarP(&cmd.Term, "term", "t", "", "The word")
	fs.StringVarP(&cmd.Description, "description", "d", "", "What the word means")
	fs.StringVar(&cmd.Color, "color", "", "Color as #RRGGBB or #AARRGGBB")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Color == "" {
		cmd.color = entities.RandomColor()
		return nil
	}

	color, err := utils.HexARGBToColor(cmd.Color)
	if err != nil {
		fs.Usage()
		return fmt.Errorf("invalid color %q: %w", cmd.Color, err)
	}
	cmd.color = color
	return nil
}

// Run stores the word. The database is created if it does not exist yet.
func (cmd *AddCommand) Run() error {
	db, err := openOrCreate(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	uc := vocabulary.NewUseCases(newRepository(db))
	word := entities.Word{
		Term:        cmd.Term,
		Description: cmd.Description,
		Timestamp:   entities.NowMillis(),
		Color:       cmd.color,
	}

	if err := uc.AddWord(context.Background(), &word); err != nil {
		var validationErr *vocabulary.ValidationError
		if errors.As(err, &validationErr) {
			return errors.New(validationErr.Message)
		}
		return fmt.Errorf("failed to save word: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Added %q (id %d)\n", word.Term, word.ID)
	return nil
}
