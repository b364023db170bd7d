package config

import (
	"testing"
	"time"

	"tickmatch/domain/lob"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tick, _ := lob.ParsePrice("0.01")
	if cfg.Book.TickSize != tick || cfg.Book.Backend != lob.DenseArray {
		t.Fatalf("book defaults %+v", cfg.Book)
	}
	if cfg.Server.GRPCPort != 50051 {
		t.Fatalf("grpc port %d", cfg.Server.GRPCPort)
	}
	if cfg.Storage.SnapshotInterval != 30*time.Second {
		t.Fatalf("snapshot interval %v", cfg.Storage.SnapshotInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TICKMATCH_TICK_SIZE", "0.50")
	t.Setenv("TICKMATCH_BACKEND", "rbtree")
	t.Setenv("TICKMATCH_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("TICKMATCH_KAFKA_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tick, _ := lob.ParsePrice("0.50")
	if cfg.Book.TickSize != tick || cfg.Book.Backend != lob.RBTree {
		t.Fatalf("book %+v", cfg.Book)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "b:9092" {
		t.Fatalf("kafka %+v", cfg.Kafka)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TICKMATCH_TICK_SIZE", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatalf("bad tick size accepted")
	}

	t.Setenv("TICKMATCH_TICK_SIZE", "0.01")
	t.Setenv("TICKMATCH_BACKEND", "btree")
	if _, err := Load(); err == nil {
		t.Fatalf("bad backend accepted")
	}
}
