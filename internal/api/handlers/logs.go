package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sentinel/internal/eventlog"
	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/pkg/dto"
)

type LogHandler struct {
	svc *eventlog.Service
}

func NewLogHandler(svc *eventlog.Service) *LogHandler {
	return &LogHandler{svc: svc}
}

func (h *LogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.LogEntryResponse{
			ID:        e.ID,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			Level:     string(e.Level),
			Tag:       e.Tag,
			Message:   e.Message,
			Context:   e.Context,
			CreatedBy: e.CreatedBy,
		})
	}

	c.JSON(http.StatusOK, dto.LogListResponse{Logs: resp, Total: len(resp)})
}

// Append lets clients record their own operational entries (camera toggles,
// detection notices, UI errors). The write is best-effort by contract, so
// the response is always accepted.
func (h *LogHandler) Append(c *gin.Context) {
	var req dto.AppendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.LogEntry{
		Level:     models.ParseLogLevel(req.Level),
		Tag:       req.Tag,
		Message:   req.Message,
		Context:   req.Context,
		CreatedBy: req.CreatedBy,
	}
	h.svc.Append(c.Request.Context(), entry)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// ClearAll deletes every log entry. Not reversible.
func (h *LogHandler) ClearAll(c *gin.Context) {
	if err := h.svc.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
