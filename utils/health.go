package utils

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every probed service answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Services {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth runs every check once and stores the snapshot.
func CheckHealth(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := HealthStatus{Services: make(map[string]bool, len(checks)), CheckedAt: time.Now()}
	for _, name := range names {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := checks[name](pctx)
		cancel()
		if err != nil {
			GetLogger().Warn("health check failed", zap.String("service", name), zap.Error(err))
		}
		status.Services[name] = err == nil
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled. The
// returned channel is closed once the monitor goroutine has exited.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks map[string]HealthCheck) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		CheckHealth(ctx, checks)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, checks)
			}
		}
	}()
	return done
}
