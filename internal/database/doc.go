// Package database is the durable word store.
//
// # Architecture
//
//	database/
//	├── database.go   # Connection setup, goose migrations
//	├── migrations/   # Embedded SQL (schema v1, v2 adds the timestamp index)
//	└── words/        # Word CRUD and the live query
//
// # Usage
//
//	db, err := database.NewDatabase("./vocabdaily.db", false)
//	repo := words.NewRepository(db.DB)
//
//	sub, err := repo.Subscribe(ctx)
//	defer sub.Cancel()
//	for snapshot := range sub.C() {
//		// every committed write produces a complete snapshot
//	}
package database
