// 환경변수 및 설정 파일 로딩
//
// 우선순위: 환경변수 > 설정 파일(ALERT_LLM_CONFIG, TOML) > 기본값
// 작업 디렉터리에 .env 파일이 있으면 먼저 환경변수로 로드

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Relay     RelayConfig     `toml:"relay"`
	Ollama    OllamaConfig    `toml:"ollama"`
	GenAI     GenAIConfig     `toml:"genai"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Simulator SimulatorConfig `toml:"simulator"`
	Logging   LoggingConfig   `toml:"logging"`
}

type RelayConfig struct {
	ListenAddr            string   `toml:"listen_addr"`
	Models                []string `toml:"models"`
	LogFile               string   `toml:"log_file"`
	BackendTimeoutSeconds int      `toml:"backend_timeout_seconds"`
	SinkTimeoutSeconds    int      `toml:"sink_timeout_seconds"`
	ProbeSchedule         string   `toml:"probe_schedule"`
}

type OllamaConfig struct {
	BaseURL string `toml:"base_url"`
}

type GenAIConfig struct {
	APIKey string `toml:"api_key"`
}

type PostgresConfig struct {
	DatabaseURL string `toml:"database_url"`
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	Database    string `toml:"database"`
	SSLMode     string `toml:"sslmode"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type SimulatorConfig struct {
	TargetURL       string `toml:"target_url"`
	IntervalSeconds int    `toml:"interval_seconds"`
	JitterSeconds   int    `toml:"jitter_seconds"`
	Senders         int    `toml:"senders"`
	ExportFile      string `toml:"export_file"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// BackendTimeout - 백엔드 호출 1회당 제한 시간
func (c RelayConfig) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

// SinkTimeout - 로그 저장소(파일, PostgreSQL, Kafka) append 1회당 제한 시간
func (c RelayConfig) SinkTimeout() time.Duration {
	return time.Duration(c.SinkTimeoutSeconds) * time.Second
}

func (c SimulatorConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c SimulatorConfig) Jitter() time.Duration {
	return time.Duration(c.JitterSeconds) * time.Second
}

// Enabled - DATABASE_URL 또는 PGUSER/PGDATABASE가 설정된 경우에만 PostgreSQL 미러 사용
func (c PostgresConfig) Enabled() bool {
	return c.DatabaseURL != "" || (c.User != "" && c.Database != "")
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

func defaults() Config {
	return Config{
		Relay: RelayConfig{
			ListenAddr:            ":8200",
			Models:                []string{"llama3"},
			LogFile:               "alerts_log.jsonl",
			BackendTimeoutSeconds: 60,
			SinkTimeoutSeconds:    5,
			ProbeSchedule:         "@every 1m",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Kafka: KafkaConfig{
			Topic: "alert-llm-entries",
		},
		Simulator: SimulatorConfig{
			TargetURL:       "http://localhost:8200/alert",
			IntervalSeconds: 10,
			JitterSeconds:   3,
			Senders:         2,
			ExportFile:      "sent_alerts.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("ALERT_LLM_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	cfg.Relay.ListenAddr = getenv("RELAY_LISTEN_ADDR", cfg.Relay.ListenAddr)
	if raw := os.Getenv("RELAY_MODELS"); raw != "" {
		cfg.Relay.Models = splitCSV(raw)
	}
	cfg.Relay.LogFile = getenv("RELAY_LOG_FILE", cfg.Relay.LogFile)
	cfg.Relay.ProbeSchedule = getenv("PROBE_SCHEDULE", cfg.Relay.ProbeSchedule)

	cfg.Ollama.BaseURL = strings.TrimRight(getenv("OLLAMA_URL", cfg.Ollama.BaseURL), "/")
	cfg.GenAI.APIKey = getenv("AI_API_KEY", cfg.GenAI.APIKey)

	cfg.Postgres.DatabaseURL = getenv("DATABASE_URL", cfg.Postgres.DatabaseURL)
	cfg.Postgres.Host = getenv("PGHOST", cfg.Postgres.Host)
	cfg.Postgres.Port = getenv("PGPORT", cfg.Postgres.Port)
	cfg.Postgres.User = getenv("PGUSER", cfg.Postgres.User)
	cfg.Postgres.Password = getenv("PGPASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Database = getenv("PGDATABASE", cfg.Postgres.Database)
	cfg.Postgres.SSLMode = getenv("PGSSLMODE", cfg.Postgres.SSLMode)

	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		cfg.Kafka.Brokers = splitCSV(raw)
	}
	cfg.Kafka.Topic = getenv("KAFKA_TOPIC", cfg.Kafka.Topic)

	cfg.Simulator.TargetURL = getenv("SIMULATOR_TARGET_URL", cfg.Simulator.TargetURL)
	cfg.Simulator.ExportFile = getenv("SIMULATOR_EXPORT_FILE", cfg.Simulator.ExportFile)

	cfg.Logging.Level = strings.ToLower(getenv("LOG_LEVEL", cfg.Logging.Level))
	cfg.Logging.Dir = getenv("LOG_DIR", cfg.Logging.Dir)

	var err error
	if cfg.Relay.BackendTimeoutSeconds, err = getenvInt("BACKEND_TIMEOUT_SECONDS", cfg.Relay.BackendTimeoutSeconds); err != nil {
		return Config{}, err
	}
	if cfg.Relay.SinkTimeoutSeconds, err = getenvInt("SINK_TIMEOUT_SECONDS", cfg.Relay.SinkTimeoutSeconds); err != nil {
		return Config{}, err
	}
	if cfg.Simulator.IntervalSeconds, err = getenvInt("SIMULATOR_INTERVAL_SECONDS", cfg.Simulator.IntervalSeconds); err != nil {
		return Config{}, err
	}
	if cfg.Simulator.JitterSeconds, err = getenvInt("SIMULATOR_JITTER_SECONDS", cfg.Simulator.JitterSeconds); err != nil {
		return Config{}, err
	}
	if cfg.Simulator.Senders, err = getenvInt("SIMULATOR_SENDERS", cfg.Simulator.Senders); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	invalid := []string{}
	if len(c.Relay.Models) == 0 {
		invalid = append(invalid, "RELAY_MODELS")
	}
	if c.Relay.BackendTimeoutSeconds <= 0 {
		invalid = append(invalid, "BACKEND_TIMEOUT_SECONDS")
	}
	if c.Relay.SinkTimeoutSeconds <= 0 {
		invalid = append(invalid, "SINK_TIMEOUT_SECONDS")
	}
	if c.Simulator.IntervalSeconds <= 0 {
		invalid = append(invalid, "SIMULATOR_INTERVAL_SECONDS")
	}
	if c.Simulator.JitterSeconds < 0 {
		invalid = append(invalid, "SIMULATOR_JITTER_SECONDS")
	}
	if c.Simulator.Senders <= 0 {
		invalid = append(invalid, "SIMULATOR_SENDERS")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid configuration values: %v", invalid)
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
	return n, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
