package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"justfood/internal/api"
	"justfood/internal/content"
	"justfood/internal/fanout"
	"justfood/internal/order"
	orderdb "justfood/internal/order/db"
	"justfood/internal/payment"
	"justfood/internal/user"
	"justfood/pkg/config"
	"justfood/pkg/db"
	"justfood/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config-path", "config.yaml", "path to yaml config")
	flag.Parse()

	mylog := logger.New("justfood")
	defer mylog.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		mylog.Error("", "config_load_failed", "Failed to load configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, &cfg.Database, mylog)
	if err != nil {
		mylog.Error("", "db_connection_failed", "Failed to connect to database", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(&cfg.Database, mylog); err != nil {
		mylog.Error("", "migration_failed", "Failed to apply migrations", err)
		os.Exit(1)
	}

	hub := fanout.NewHub(mylog)
	sinks := []fanout.Sink{hub}

	// The AMQP mirror is best-effort like the rest of fan-out: if the broker
	// is down we run realtime-only rather than refuse to start.
	if cfg.RabbitMQ.Host != "" {
		publisher, err := fanout.NewAMQPPublisher(&cfg.RabbitMQ, mylog)
		if err != nil {
			mylog.Error("", "mb_connection_failed", "Running without the RabbitMQ notification mirror", err)
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}

	orderRepo := orderdb.NewOrderRepo(pool, mylog)
	orderService := order.NewService(orderRepo, fanout.NewMulti(sinks...), mylog)
	userRepo := user.NewRepo(pool, mylog)
	paymentClient := payment.NewClient(&cfg.Razorpay, mylog)
	contentClient := content.NewClient(&cfg.Sanity, mylog)

	server := api.NewServer(cfg, mylog, orderService, hub, userRepo, paymentClient, contentClient)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		mylog.Error("", "server_failed", "Server failed unexpectedly", err)
		os.Exit(1)
	}

	mylog.Info("", "server_stopped", "Server exited normally")
}
