package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kube-rca/alert-llm/internal/metrics"
)

// Router 구성에 필요한 핸들러와 메트릭 레지스트리
type RouterDeps struct {
	Alerts   *AlertHandler
	Status   *StatusHandler
	Entries  *EntriesHandler
	Registry *prometheus.Registry
}

// NewRouter - 라우트 등록
//
//	POST /alert, /webhook/alertmanager  알림 수신
//	GET  /ping, /, /status              헬스체크
//	GET  /api/v1/entries                최근 로그 엔트리
//	GET  /metrics, /openapi.json
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())

	if deps.Registry != nil {
		router.Use(metrics.NewSummaryBuilder("http_latency_ms", "HTTP request latency in milliseconds.").Build(deps.Registry))
		router.Use(metrics.NewGaugeBuilder("http", "In-flight HTTP requests.").Build(deps.Registry))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/openapi.json", OpenAPIDoc)

	if deps.Alerts != nil {
		router.POST("/alert", deps.Alerts.Webhook)
		router.POST("/webhook/alertmanager", deps.Alerts.Webhook)
	}
	if deps.Status != nil {
		router.GET("/status", deps.Status.Status)
	}
	if deps.Entries != nil {
		router.GET("/api/v1/entries", deps.Entries.ListEntries)
	}

	return router
}
