package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jlfs-dev/picshare/internal/metrics"
	"github.com/jlfs-dev/picshare/internal/repo"
)

// Run starts a background job that refreshes the registered-users gauge
// from the store once a minute. It samples immediately so the gauge is
// populated before the first tick, and returns the cron so callers can
// Stop it on shutdown.
func Run(users *repo.UserRepo) *cron.Cron {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		n, err := users.Count(ctx)
		if err != nil {
			slog.Error("scheduler: count users", "error", err)
			return
		}
		metrics.SetRegisteredUsers(n)
	}

	refresh()

	c := cron.New()
	// AddFunc only fails on a bad spec; "@every 1m" is constant.
	_, _ = c.AddFunc("@every 1m", refresh)
	c.Start()
	return c
}
