// Command seed creates a word database filled with sample vocabulary.
// Usage: go run ./cmd/seed [--db path/to/words.db] [--keep]
package main

import (
	"context"
	"log"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/vocabdaily/internal/config"
	"github.com/mrlokans/vocabdaily/internal/database"
	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/entities"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

type sampleWord struct {
	term        string
	description string
	daysAgo     int
}

var sampleWords = []sampleWord{
	{"stoicism", "The endurance of pain or hardship without the display of feelings and without complaint", 30},
	{"ephemeral", "Lasting for a very short time", 21},
	{"perspicacious", "Having a ready insight into and understanding of things", 14},
	{"sagacity", "The quality of being wise or showing good judgement", 10},
	{"equanimity", "Mental calmness and composure, especially in a difficult situation", 7},
	{"serendipity", "The occurrence of events by chance in a happy way", 5},
	{"laconic", "Using very few words", 3},
	{"mellifluous", "Sweet or musical; pleasant to hear", 2},
	{"quixotic", "Exceedingly idealistic; unrealistic and impractical", 1},
	{"petrichor", "A pleasant smell that accompanies the first rain after a dry spell", 0},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	keep := flag.Bool("keep", false, "add to an existing database instead of starting fresh")
	flag.Parse()

	log.Printf("Seeding word database at %s...", *dbPath)

	if !*keep {
		if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove existing database: %v", err)
		}
	}

	db, err := database.NewDatabase(*dbPath, false)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	uc := vocabulary.NewUseCases(words.NewRepository(db.DB))
	now := time.Now()

	for i, sample := range sampleWords {
		word := entities.Word{
			Term:        sample.term,
			Description: sample.description,
			Timestamp:   now.AddDate(0, 0, -sample.daysAgo).UnixMilli(),
			Color:       entities.Palette[i%len(entities.Palette)],
		}
		if err := uc.AddWord(context.Background(), &word); err != nil {
			log.Printf("Failed to add %s: %v", sample.term, err)
			continue
		}
		log.Printf("Added: %s (id %d)", word.Term, word.ID)
	}

	log.Println("Word database seeded successfully!")
}
