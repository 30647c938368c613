package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorAnalyzerHealth checks the sentiment service every interval until ctx
// is done and records the outcome in healthy. It logs only on transitions.
func MonitorAnalyzerHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		isHealthy := checker.HealthCheck(checkCtx)
		was := healthy.Swap(isHealthy)
		switch {
		case was && !isHealthy:
			slog.Warn("[HealthCheck] Analyzer is unhealthy")
		case !was && isHealthy:
			slog.Info("[HealthCheck] Analyzer is reachable again")
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
