package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/mrlokans/vocabdaily/internal/config"
	"github.com/mrlokans/vocabdaily/internal/database"
	"github.com/mrlokans/vocabdaily/internal/database/words"
	"github.com/mrlokans/vocabdaily/internal/exporters"
	http_controllers "github.com/mrlokans/vocabdaily/internal/http"
	"github.com/mrlokans/vocabdaily/internal/scheduler"
	"github.com/mrlokans/vocabdaily/internal/tasks"
	"github.com/mrlokans/vocabdaily/internal/viewstate"
	"github.com/mrlokans/vocabdaily/internal/vocabulary"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewCORSHandler lets browser UIs served from allowedOrigins call the API.
func NewCORSHandler(allowedOrigins []string, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}).Handler(next)
}

// checkExportDir verifies that dir exists, is a directory and is writable.
func checkExportDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("export directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export directory %s is not a directory", dir)
	}

	probe := filepath.Join(dir, ".vocabdaily")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("export directory %s is not writable: %w", dir, err)
	}
	f.Close()
	return os.Remove(probe)
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting VocabDaily v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if cfg.Export.Dir == "" {
		log.Printf("WARNING: Export directory is not set. Markdown export will be disabled. Set 'EXPORT_DIR' environment variable to enable.")
	} else if err := checkExportDir(cfg.Export.Dir); err != nil {
		log.Printf("WARNING: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := words.NewRepository(db.DB)
	useCases := vocabulary.NewUseCases(repo)

	list, err := viewstate.NewListHolder(ctx, useCases)
	if err != nil {
		log.Fatalf("Failed to load words: %v", err)
	}

	exporter := exporters.NewDatabaseMarkdownExporter(repo, exporters.NewMarkdownExporter(cfg.Export.Dir, cfg.Export.FileName))

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create task client: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewExportVocabularyQueue(exporter))
		go taskClient.Start(ctx)
	}

	dispatcher := tasks.NewExportDispatcher(taskClient, exporter)

	exportSync := scheduler.NewExportSyncScheduler(dispatcher, scheduler.ExportSyncConfig{
		Enabled:   cfg.ExportSync.Enabled,
		Schedule:  cfg.ExportSync.Schedule,
		ExportDir: cfg.Export.Dir,
	})
	if err := exportSync.Start(ctx); err != nil {
		log.Printf("WARNING: Export sync scheduler not started: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Version:  version,
		List:     list,
		Editors:  http_controllers.NewEditorSessions(ctx, useCases),
		Exporter: dispatcher,
	}
	if taskClient != nil {
		routerCfg.TaskStatus = taskClient
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		exportSync.Stop()
		list.Close()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		log.Printf("Live queries still open: %d", repo.Subscribers())
	}

	Serve(NewCORSHandler(cfg.HTTP.CORSAllowedOrigins, router), cfg, onShutdown)
}
