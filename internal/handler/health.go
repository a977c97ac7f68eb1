package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/alert-llm/internal/model"
)

// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "alert-llm relay is running",
	})
}

// BackendStatus - Ollama 상태 조회 (최근 probe 결과 또는 새 probe)
type BackendStatus interface {
	Current(ctx context.Context) model.BackendStatusResponse
}

type StatusHandler struct {
	status BackendStatus
}

func NewStatusHandler(status BackendStatus) *StatusHandler {
	return &StatusHandler{status: status}
}

// Status godoc
// @Summary Inference backend status
// @Description Reports the Ollama backend state and installed models, from the scheduled probe when it is recent. Always 200; the status field carries the result.
// @Tags health
// @Produce json
// @Success 200 {object} model.BackendStatusResponse
// @Router /status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Current(c.Request.Context()))
}
