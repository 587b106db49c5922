package tasks

import (
	"context"
	"fmt"
	"sync"

	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
)

// Group supervises detached background units of work. Every unit is tracked
// until completion so shutdown can wait for in-flight work, and failures end
// up in the log and the error counters instead of being discarded.
type Group struct {
	wg      sync.WaitGroup
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewGroup creates a new task group
func NewGroup(log logger.Logger, m *metrics.Metrics) *Group {
	return &Group{
		logger:  log,
		metrics: m,
	}
}

// Go launches fn as a supervised background unit. Panics are recovered and
// reported as failures; no failure ever escapes the unit.
func (g *Group) Go(name string, fn func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.fail(name, fmt.Errorf("panic: %v", r))
			}
		}()

		if err := fn(); err != nil {
			g.fail(name, err)
		}
	}()
}

// Wait blocks until all units complete or the context expires.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Group) fail(name string, err error) {
	g.logger.Error("Background task failed", "task", name, "error", err)
	if g.metrics != nil {
		g.metrics.ErrorsCount.WithLabelValues(name).Inc()
	}
}
