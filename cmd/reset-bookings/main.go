// Command reset-bookings deletes every booking from the log. It is an
// operator maintenance tool; the API never deletes bookings.
//
// Usage:
//
//	reset-bookings -yes
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/config"
	"github.com/pbkm/badminton-split/internal/database"
	"github.com/pbkm/badminton-split/internal/logger"
	"github.com/pbkm/badminton-split/internal/repository"
)

func main() {
	yes := flag.Bool("yes", false, "confirm deletion of all bookings")
	flag.Parse()
	if !*yes {
		fmt.Fprintln(os.Stderr, "refusing to delete bookings without -yes")
		os.Exit(2)
	}

	cfg := config.Load()
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := repository.NewBookingRepo(db).DeleteAll(ctx)
	if err != nil {
		zl.Fatal("delete bookings", zap.Error(err))
	}
	zl.Info("bookings deleted", zap.Int64("count", n))
}
