package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/client"
	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/kube-rca/alert-llm/internal/db"
	"github.com/kube-rca/alert-llm/internal/handler"
	"github.com/kube-rca/alert-llm/internal/logging"
	"github.com/kube-rca/alert-llm/internal/metrics"
	"github.com/kube-rca/alert-llm/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title alert-llm relay API
// @version 1.0
// @description Receives Alertmanager-style alerts, asks LLM backends for troubleshooting analysis and logs the results.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to load config")
	}

	logCloser, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Dir, "relay")
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to set up logging")
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	relayMetrics := metrics.NewRelay(registry)

	// 1. 기본 로그 (JSONL) + 미러
	fileLog, err := db.OpenFileLog(cfg.Relay.LogFile)
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to open log file")
	}
	defer fileLog.Close()
	sinks := []service.EntrySink{fileLog}

	if cfg.Postgres.Enabled() {
		pg, err := db.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to connect to postgres")
		}
		defer pg.Close()
		if err := pg.EnsureLogEntrySchema(ctx); err != nil {
			log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to ensure log entry schema")
		}
		sinks = append(sinks, pg)
		log.Info("Main - postgres mirror enabled")
	}

	if cfg.Kafka.Enabled() {
		publisher := client.NewKafkaPublisher(cfg.Kafka)
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.WithFields(log.Fields{"topic": cfg.Kafka.Topic, "brokers": cfg.Kafka.Brokers}).Info("Main - kafka mirror enabled")
	}

	// 2. 추론 백엔드
	ollama := client.NewOllamaClient(cfg.Ollama, cfg.Relay.BackendTimeout())

	var genai service.Generator
	if cfg.GenAI.APIKey != "" {
		genaiClient, err := client.NewGenAIClient(ctx, cfg.GenAI)
		if err != nil {
			log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to create genai client")
		}
		genai = genaiClient
	}

	backends := service.ResolveBackends(cfg.Relay.Models, ollama, genai)
	enrichment := service.NewEnrichmentService(backends, cfg.Relay.BackendTimeout(), cfg.Relay.SinkTimeout(), sinks, relayMetrics)
	status := service.NewStatusService(ollama, enrichment.BackendIDs(), relayMetrics)

	// 3. 주기적인 백엔드 상태 확인
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Relay.ProbeSchedule, status.Run); err != nil {
		log.WithFields(log.Fields{"schedule": cfg.Relay.ProbeSchedule, "error": err.Error()}).Fatal("Main - invalid probe schedule")
	}
	scheduler.Start()
	go status.Run()

	// 4. HTTP 서버
	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Alerts:   handler.NewAlertHandler(enrichment),
		Status:   handler.NewStatusHandler(status),
		Entries:  handler.NewEntriesHandler(fileLog),
		Registry: registry,
	})

	srv := &http.Server{
		Addr:    cfg.Relay.ListenAddr,
		Handler: router,
	}

	go func() {
		log.WithFields(log.Fields{
			"addr":     cfg.Relay.ListenAddr,
			"ollama":   ollama.BaseURL(),
			"backends": enrichment.BackendIDs(),
			"log_file": fileLog.Path(),
		}).Info("Main - relay listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Main - shutting down")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("Main - graceful shutdown failed")
	}
}
