// Command cleanup purges user records. It is invoked periodically by an
// external scheduler (daily in production, hourly with -hours 1 while
// testing) and exits non-zero on any failure so the scheduler can alert.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/meishi-app/backend/config"
	"github.com/meishi-app/backend/internal/database"
	"github.com/meishi-app/backend/internal/service"
)

func main() {
	all := flag.Bool("all", false, "Delete every user record")
	hours := flag.Int("hours", 24, "Delete users registered more than this many hours ago")
	from := flag.String("from", "", "Range start (RFC3339); requires -to")
	to := flag.String("to", "", "Range end (RFC3339); requires -from")
	tz := flag.String("tz", "Asia/Tokyo", "Time zone for logging the cutoff")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		os.Exit(1)
	}

	cleanup := service.NewCleanupService(db, logger)
	ctx := context.Background()

	var deleted int64
	switch {
	case *all:
		logger.Info("starting cleanup: deleting all user records")
		deleted, err = cleanup.DeleteAllUsers(ctx)
	case *from != "" || *to != "":
		var start, end time.Time
		if start, err = time.Parse(time.RFC3339, *from); err != nil {
			logger.Error("invalid -from value", zap.String("from", *from), zap.Error(err))
			os.Exit(1)
		}
		if end, err = time.Parse(time.RFC3339, *to); err != nil {
			logger.Error("invalid -to value", zap.String("to", *to), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("starting cleanup: deleting users in range",
			zap.Time("start", start), zap.Time("end", end))
		deleted, err = cleanup.DeleteUsersInRange(ctx, start, end)
	default:
		cutoff := time.Now().Add(-time.Duration(*hours) * time.Hour)
		fields := []zap.Field{
			zap.Int("hours", *hours),
			zap.Time("cutoff_utc", cutoff.UTC()),
		}
		if loc, locErr := time.LoadLocation(*tz); locErr == nil {
			fields = append(fields, zap.Time("cutoff_local", cutoff.In(loc)))
		}
		logger.Info("starting cleanup: deleting stale users", fields...)
		deleted, err = cleanup.DeleteUsersOlderThan(ctx, cutoff)
	}

	if err != nil {
		logger.Error("cleanup failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("cleanup completed", zap.Int64("deleted", deleted))
}
