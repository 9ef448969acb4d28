package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vocabdaily/internal/database"
)

type HealthResponse struct {
	Status        string            `json:"status"`
	Time          string            `json:"time"`
	Version       string            `json:"version,omitempty"`
	SchemaVersion int64             `json:"schema_version,omitempty"`
	Checks        map[string]string `json:"checks"`
}

// HealthController reports whether the word store is reachable and which
// schema version it is on.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string),
	}

	if h.db == nil {
		health.Checks["database"] = "not configured"
		c.IndentedJSON(http.StatusOK, health)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Checks["database"] = "error: " + err.Error()
		c.IndentedJSON(http.StatusServiceUnavailable, health)
		return
	}
	health.Checks["database"] = "ok"

	version, err := h.db.Version(ctx)
	if err != nil {
		health.Status = "unhealthy"
		health.Checks["schema"] = "error: " + err.Error()
		c.IndentedJSON(http.StatusServiceUnavailable, health)
		return
	}
	health.SchemaVersion = version
	health.Checks["schema"] = "v" + strconv.FormatInt(version, 10)

	c.IndentedJSON(http.StatusOK, health)
}
