package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/vocabdaily/internal/exporters"
	"github.com/mrlokans/vocabdaily/internal/tasks"
)

// ExportDispatcher starts a vocabulary export. tasks.ExportDispatcher
// implements it.
type ExportDispatcher interface {
	Dispatch(ctx context.Context, trigger string) (tasks.ExportOutcome, error)
}

// TaskStatusReader looks up queued tasks. tasks.Client implements it.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

var (
	_ ExportDispatcher = (*tasks.ExportDispatcher)(nil)
	_ TaskStatusReader = (*tasks.Client)(nil)
)

type ExportController struct {
	dispatcher ExportDispatcher
	tasks      TaskStatusReader
}

// NewExportController creates the controller; taskStatus may be nil when the
// task queue is disabled.
func NewExportController(dispatcher ExportDispatcher, taskStatus TaskStatusReader) *ExportController {
	return &ExportController{dispatcher: dispatcher, tasks: taskStatus}
}

// Export handles POST /api/export
func (ec *ExportController) Export(c *gin.Context) {
	outcome, err := ec.dispatcher.Dispatch(c.Request.Context(), "api")
	if errors.Is(err, exporters.ErrExportDirNotConfigured) {
		respondError(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "export vocabulary")
		return
	}

	if outcome.Queued() {
		respondAccepted(c, "export enqueued", outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// TaskStatus handles GET /api/export/tasks/:id
func (ec *ExportController) TaskStatus(c *gin.Context) {
	if ec.tasks == nil {
		respondNotFound(c, "task queue")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.tasks.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
