// Command poller is a reference polling client: it fetches the
// dashboard snapshot on a fixed delay and logs headline figures. It
// performs no computation of its own; everything it prints comes
// straight from the snapshot document.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lorrc/glpi-dashboard-backend/internal/config"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	"github.com/lorrc/glpi-dashboard-backend/internal/infrastructure/logging"
	"github.com/lorrc/glpi-dashboard-backend/internal/poller"
)

// envelope mirrors the delivery boundary's response shape.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	domain.Snapshot
}

func main() {
	cfg, err := config.LoadPoller()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name + "-poller",
		Environment: cfg.App.Environment,
	})

	client := &http.Client{Timeout: cfg.Server.ReadTimeout}

	fetch := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Poller.Endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("decoding snapshot: %w", err)
		}
		if !env.Success {
			return fmt.Errorf("snapshot request failed: %s", env.Error)
		}

		logger.Info("snapshot received",
			"timestamp", env.Timestamp,
			"total_open", env.TicketsStatus.TotalOpen,
			"total_created", env.TicketsStatus.TotalCreated,
			"overdue", env.OverdueTickets.Total,
			"created_today", env.DailyComparison.Today,
			"satisfaction_pct", env.Satisfaction.Percentage,
		)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("poller starting",
		"endpoint", cfg.Poller.Endpoint,
		"interval", cfg.Poller.Interval.String(),
	)

	loop := poller.New(fetch, cfg.Poller.Interval, cfg.Poller.RetryBackoff, logger)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("poller stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("poller shutdown complete")
}
