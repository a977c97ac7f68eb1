package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/kube-rca/alert-llm/internal/logging"
	"github.com/kube-rca/alert-llm/internal/simulator"
)

// relay 응답 대기 시간 = 백엔드 timeout + 여유
const responseSlack = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to load config")
	}

	logCloser, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Dir, "simulator")
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Main - failed to set up logging")
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"target": cfg.Simulator.TargetURL}).Info("Main - starting alert simulator, press Ctrl+C to stop")

	if err := run(ctx, cfg); err != nil {
		log.WithFields(log.Fields{"path": cfg.Simulator.ExportFile, "error": err.Error()}).Fatal("Main - failed to export send log")
	}
}

// run - ctx가 취소될 때까지 전송한 뒤 전송 기록을 파일로 내보냄
func run(ctx context.Context, cfg config.Config) error {
	sendLog := simulator.NewSendLog()
	sender := simulator.NewSender(cfg.Simulator.TargetURL, cfg.Relay.BackendTimeout()+responseSlack)
	simulator.NewRunner(cfg.Simulator, sender, sendLog).Run(ctx)

	if err := sendLog.Export(cfg.Simulator.ExportFile); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": cfg.Simulator.ExportFile, "sent": sendLog.Len()}).Info("Main - send log exported")
	return nil
}
