package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/vocabdaily/internal/tasks"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ExportDispatcher starts a vocabulary export. tasks.ExportDispatcher
// implements it.
type ExportDispatcher interface {
	Dispatch(ctx context.Context, trigger string) (tasks.ExportOutcome, error)
}

type ExportSyncConfig struct {
	Enabled   bool
	Schedule  string
	ExportDir string
}

// ExportSyncScheduler periodically regenerates the markdown export.
type ExportSyncScheduler struct {
	dispatcher ExportDispatcher
	config     ExportSyncConfig

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewExportSyncScheduler(dispatcher ExportDispatcher, config ExportSyncConfig) *ExportSyncScheduler {
	return &ExportSyncScheduler{
		dispatcher: dispatcher,
		config:     config,
		cron:       cron.New(cron.WithParser(scheduleParser)),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// Start schedules exports if sync is enabled. It stops when ctx is done.
func (s *ExportSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Export sync scheduler: disabled")
		return nil
	}

	if s.config.ExportDir == "" {
		log.Printf("Export sync scheduler: export directory not configured, skipping")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	var runCtx context.Context
	runCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runExport(runCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Export sync scheduler: started with schedule '%s'. Next run: %v", s.config.Schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running export and removes the schedule.
func (s *ExportSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	done := s.cron.Stop()
	<-done.Done()

	s.cron.Remove(s.entryID)
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Export sync scheduler: stopped")
}

func (s *ExportSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next export will occur, or nil when stopped.
func (s *ExportSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *ExportSyncScheduler) runExport(ctx context.Context) {
	startTime := time.Now()

	outcome, err := s.dispatcher.Dispatch(ctx, "schedule")
	if err != nil {
		log.Printf("Export sync: failed: %v", err)
		return
	}

	if outcome.Queued() {
		log.Printf("Export sync: queued task %s", outcome.TaskID)
		return
	}
	log.Printf("Export sync: exported %d words in %v", outcome.Result.WordsExported, time.Since(startTime).Round(time.Millisecond))
}
