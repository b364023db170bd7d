package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"google.golang.org/grpc"

	"tickmatch/api/grpcserver"
	"tickmatch/api/pb"
	"tickmatch/config"
	"tickmatch/domain/changelog"
	"tickmatch/domain/lob"
	"tickmatch/domain/repo"
	"tickmatch/infra/changestore"
	"tickmatch/infra/kafka"
	"tickmatch/infra/sequence"
	"tickmatch/jobs/broadcaster"
	"tickmatch/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := newLogger(cfg.Logging)

	// ---------------- Storage ----------------

	store, err := changestore.OpenPebble(cfg.Storage.LogDir)
	if err != nil {
		log.Error("change log open failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	outbox, err := changestore.OpenOutbox(cfg.Storage.OutboxDir)
	if err != nil {
		log.Error("outbox open failed", "err", err)
		os.Exit(1)
	}
	defer outbox.Close()

	// ---------------- Domain ----------------

	book, err := lob.NewBook(cfg.Book.Symbol, lob.Options{
		TickSize:  cfg.Book.TickSize,
		Backend:   cfg.Book.Backend,
		MaxTicks:  cfg.Book.MaxTicks,
		MaxOrders: cfg.Book.MaxOrders,
	})
	if err != nil {
		log.Error("book init failed", "err", err)
		os.Exit(1)
	}

	seq := sequence.New(0)
	tracker := changelog.NewTracker(changelog.NewCachedClock(0), seq)

	mirror := repo.NewMemRepo(
		changelog.NewTracker(changelog.SystemClock{}, sequence.New(0)),
		changelog.SinkFunc(func(*changelog.Entry) error { return nil }),
		func(o *lob.LimitOrder) *lob.LimitOrder { return o.Clone().(*lob.LimitOrder) },
		lob.OrderFromCreated,
	)

	// ---------------- Recovery ----------------

	if err := service.Recover(book, mirror, store, cfg.Storage.SnapshotDir, seq, log); err != nil {
		log.Error("recovery failed", "err", err)
		os.Exit(1)
	}

	// ---------------- Service ----------------

	opts := service.BookServiceOptions{
		Outbox:  outbox,
		Queries: mirror,
		Logger:  log,
	}
	if cfg.Kafka.Enabled {
		trades := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TradesTopic)
		defer trades.Close()
		opts.Trades = trades
	}
	svc := service.NewBookService(book, tracker, store, opts)

	// ---------------- Background jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.StartSnapshotJob(ctx, cfg.Storage.SnapshotDir, cfg.Storage.SnapshotInterval, cfg.Storage.SnapshotKeep)

	if cfg.Kafka.Enabled {
		bc, err := broadcaster.New(outbox, cfg.Kafka.Brokers, cfg.Kafka.ChangesTopic, log)
		if err != nil {
			log.Error("broadcaster init failed", "err", err)
			os.Exit(1)
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Server.GRPCPort))
	if err != nil {
		log.Error("listen failed", "port", cfg.Server.GRPCPort, "err", err)
		os.Exit(1)
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterBookQueryServer(grpcSrv, grpcserver.NewServer(svc, log))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		log.Info("shutting down")
		cancel()
		grpcSrv.GracefulStop()
	}()

	log.Info("engine running", "symbol", cfg.Book.Symbol, "backend", cfg.Book.Backend.String(), "port", cfg.Server.GRPCPort)
	if err := grpcSrv.Serve(lis); err != nil {
		log.Error("grpc server exited", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
