package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vold333/kitchen-order-ticket/internal/config"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/printer"
	"github.com/vold333/kitchen-order-ticket/internal/router"
	"github.com/vold333/kitchen-order-ticket/internal/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}
	log.Println("Migrations applied")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Println("Connected to database")

	hub := ws.NewHub()

	var sinks printer.Multi
	if cfg.PrinterURL != "" {
		sinks = append(sinks, printer.NewHTTPSink(cfg.PrinterURL, &http.Client{Timeout: 5 * time.Second}))
		log.Printf("Printing to %s", cfg.PrinterURL)
	}
	if cfg.AMQPURL != "" {
		conn, ch, err := printer.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer conn.Close()
		sinks = append(sinks, printer.NewAMQPSink(ch, cfg.AMQPExchange))
		log.Printf("Publishing print jobs to exchange %q", cfg.AMQPExchange)
	}
	if cfg.PrintToHub {
		sinks = append(sinks, printer.NewHubSink(hub))
	}
	if len(sinks) == 0 {
		log.Println("WARNING: no printer configured, receipts will be skipped")
	}

	r := router.New(cfg, database.New(pool), pool, hub, sinks)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
