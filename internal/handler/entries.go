package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/model"
)

const (
	defaultEntryLimit = 20
	maxEntryLimit     = 500
)

// EntryReader - 로그 파일의 마지막 엔트리 조회
type EntryReader interface {
	Tail(ctx context.Context, limit int) ([]model.LogEntry, error)
}

type EntriesHandler struct {
	reader EntryReader
}

func NewEntriesHandler(reader EntryReader) *EntriesHandler {
	return &EntriesHandler{reader: reader}
}

// ListEntries godoc
// @Summary List recent log entries
// @Tags entries
// @Produce json
// @Param limit query int false "Number of entries (default 20, max 500)"
// @Success 200 {object} model.LogEntryListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/entries [get]
func (h *EntriesHandler) ListEntries(c *gin.Context) {
	limit := defaultEntryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxEntryLimit)
	}

	entries, err := h.reader.Tail(c.Request.Context(), limit)
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("EntriesHandler - failed to read log entries")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.LogEntryListResponse{
		Status: "success",
		Data:   entries,
	})
}
