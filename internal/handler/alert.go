// 알림 수신 핸들러
//
// 요청 흐름:
//  1. Generator 또는 Alertmanager가 POST /alert (또는 /webhook/alertmanager)로 알림 전송
//  2. 본문을 그대로 service 레이어로 전달 (구조 검증은 하지 않음, 원본 그대로 로그에 보존)
//  3. JSON이 아니면 400, 그 외에는 분석 결과와 상관없이 200 + LogEntry

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/model"
	"github.com/kube-rca/alert-llm/internal/service"
)

// AlertProcessor - 알림 1건을 분석하고 LogEntry를 반환
type AlertProcessor interface {
	Process(ctx context.Context, raw []byte) (model.LogEntry, error)
}

// Alert 핸들러 구조체 정의
type AlertHandler struct {
	processor AlertProcessor
}

// Alert 핸들러 객체 생성
func NewAlertHandler(processor AlertProcessor) *AlertHandler {
	return &AlertHandler{
		processor: processor,
	}
}

// Webhook godoc
// @Summary Receive an alert and enrich it with LLM analysis
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body model.AlertmanagerWebhook true "Alertmanager webhook payload"
// @Success 200 {object} model.LogEntry
// @Failure 400 {object} model.ErrorResponse
// @Router /alert [post]
func (h *AlertHandler) Webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("AlertHandler - failed to read request body")
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid payload: " + err.Error()})
		return
	}

	// 호출자가 연결을 끊어도 백엔드 호출과 로그 기록은 끝까지 진행
	ctx := context.WithoutCancel(c.Request.Context())

	entry, err := h.processor.Process(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrMalformedPayload) {
			log.WithFields(log.Fields{"error": err.Error(), "bytes": len(raw)}).Warning("AlertHandler - rejected malformed payload")
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
			return
		}
		log.WithFields(log.Fields{"error": err.Error()}).Error("AlertHandler - failed to process alert")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}
