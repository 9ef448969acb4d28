package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vocabdaily/internal/database"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Database *database.Database
	Version  string

	List    WordList
	Editors *EditorSessions

	Exporter ExportDispatcher
	// TaskStatus is nil when the task queue is disabled.
	TaskStatus TaskStatusReader
}

// NewRouter creates the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	api := router.Group("/api")

	words := NewWordsController(cfg.List)
	api.GET("/words", words.List)
	api.POST("/words/order", words.ChangeOrder)
	api.POST("/words/order-panel/toggle", words.ToggleOrderPanel)
	api.POST("/words/restore", words.Restore)
	api.DELETE("/words/:id", words.Delete)

	editor := NewEditorController(cfg.Editors)
	api.POST("/editor", editor.Open)
	api.GET("/editor/:session", editor.State)
	api.POST("/editor/:session/events", editor.Event)
	api.POST("/editor/:session/save", editor.Save)
	api.DELETE("/editor/:session", editor.Discard)

	export := NewExportController(cfg.Exporter, cfg.TaskStatus)
	api.POST("/export", export.Export)
	api.GET("/export/tasks/:id", export.TaskStatus)

	return router
}
