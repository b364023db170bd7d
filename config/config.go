// Package config loads engine configuration from the environment,
// with optional .env support for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"tickmatch/domain/lob"
)

type Config struct {
	Server  ServerConfig
	Book    BookConfig
	Storage StorageConfig
	Kafka   KafkaConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	GRPCPort int
}

type BookConfig struct {
	Symbol    string
	TickSize  lob.Price
	Backend   lob.BackendKind
	MaxTicks  int64
	MaxOrders int
}

type StorageConfig struct {
	LogDir           string
	OutboxDir        string
	SnapshotDir      string
	SnapshotInterval time.Duration
	SnapshotKeep     int
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	ChangesTopic string
	TradesTopic  string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables. A .env file in
// the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	book, err := loadBookConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		Server: ServerConfig{
			GRPCPort: getEnvInt("TICKMATCH_GRPC_PORT", 50051),
		},
		Book: book,
		Storage: StorageConfig{
			LogDir:           getEnv("TICKMATCH_LOG_DIR", "./data/changelog"),
			OutboxDir:        getEnv("TICKMATCH_OUTBOX_DIR", "./data/outbox"),
			SnapshotDir:      getEnv("TICKMATCH_SNAPSHOT_DIR", "./data/snapshots"),
			SnapshotInterval: getEnvDuration("TICKMATCH_SNAPSHOT_INTERVAL", 30*time.Second),
			SnapshotKeep:     getEnvInt("TICKMATCH_SNAPSHOT_KEEP", 3),
		},
		Kafka: KafkaConfig{
			Enabled:      getEnvBool("TICKMATCH_KAFKA_ENABLED", false),
			Brokers:      getEnvSlice("TICKMATCH_KAFKA_BROKERS", []string{"localhost:9092"}),
			ChangesTopic: getEnv("TICKMATCH_KAFKA_CHANGES_TOPIC", "tickmatch.changes"),
			TradesTopic:  getEnv("TICKMATCH_KAFKA_TRADES_TOPIC", "tickmatch.trades"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("TICKMATCH_LOG_LEVEL", "info"),
			Format: getEnv("TICKMATCH_LOG_FORMAT", "text"),
		},
	}, nil
}

func loadBookConfig() (BookConfig, error) {
	tickStr := getEnv("TICKMATCH_TICK_SIZE", "0.01")
	if _, err := decimal.NewFromString(tickStr); err != nil {
		return BookConfig{}, fmt.Errorf("config: tick size %q: %w", tickStr, err)
	}
	tick, err := lob.ParsePrice(tickStr)
	if err != nil {
		return BookConfig{}, fmt.Errorf("config: tick size %q: %w", tickStr, err)
	}
	backend, err := lob.ParseBackend(getEnv("TICKMATCH_BACKEND", "dense"))
	if err != nil {
		return BookConfig{}, fmt.Errorf("config: %w", err)
	}
	return BookConfig{
		Symbol:    getEnv("TICKMATCH_SYMBOL", "BTCUSDT"),
		TickSize:  tick,
		Backend:   backend,
		MaxTicks:  int64(getEnvInt("TICKMATCH_MAX_TICKS", 30_000_000)),
		MaxOrders: getEnvInt("TICKMATCH_MAX_ORDERS", 1_000_000),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvSlice(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
