package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bocateria/internal/db"
	"bocateria/internal/order"

	"github.com/joho/godotenv"
)

func main() {
	once := flag.Bool("once", false, "print the stats once and exit")
	interval := flag.Duration("interval", time.Minute, "time between reports")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("📊 Stats worker starting...")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pgDB := db.ConnectPostgres(dbURL)
	defer pgDB.Close()

	repo := order.NewPostgresHistoryRepository(pgDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := report(ctx, repo); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	log.Printf("Reporting every %s. Press Ctrl+C to stop.", *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		if err := report(ctx, repo); err != nil {
			log.Printf("⚠️  stats error: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("🛑 Stats worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func report(ctx context.Context, repo order.HistoryRepository) error {
	history, err := repo.LoadAll(ctx, order.HistoryKeyPrefix)
	if err != nil {
		return err
	}

	stats := order.Stats(history)
	log.Printf("[STATS] orders=%d revenue=%s€ popular=%q",
		stats.TotalOrders, stats.TotalRevenue.StringFixed(2), stats.MostPopularItem)
	for _, option := range []order.DiningOption{order.DineIn, order.Takeout} {
		log.Printf("[STATS]   %s: %s€", option, stats.RevenueByDiningOption[option].StringFixed(2))
	}
	return nil
}
