// LogEntry를 Kafka 토픽으로 미러링하는 Publisher
//
// 환경변수:
//   - KAFKA_BROKERS: 브로커 목록 (쉼표 구분)
//   - KAFKA_TOPIC: 토픽 이름 (default: alert-llm-entries)

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/kube-rca/alert-llm/internal/model"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
		topic: cfg.Topic,
	}
}

func (p *KafkaPublisher) Name() string {
	return "kafka:" + p.topic
}

// Append - 엔트리 ID를 키로 JSON 메시지 1건 발행
func (p *KafkaPublisher) Append(ctx context.Context, entry model.LogEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.ID.String()),
		Value: value,
		Time:  entry.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to publish log entry: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
