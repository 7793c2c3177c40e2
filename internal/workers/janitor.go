package workers

import (
	"context"
	"time"

	"github.com/zerovault/zerovault/internal/logger"
)

// Pruner is the narrow view of a stateful session manager the janitor needs.
// The stateless JWT backend has nothing to prune and never gets a janitor.
type Pruner interface {
	// Prune drops expired entries and reports how many were removed.
	Prune() int
}

// SessionJanitor periodically sweeps expired in-memory sessions. It spawns
// one goroutine on Run and stops when its context is cancelled.
type SessionJanitor struct {
	pruner   Pruner
	interval time.Duration

	ctx    context.Context
	logger *logger.Logger
}

func NewSessionJanitor(ctx context.Context, pruner Pruner, interval time.Duration, logger *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		pruner:   pruner,
		interval: interval,
		ctx:      ctx,
		logger:   logger,
	}
}

func (j *SessionJanitor) Run() {
	go j.loop()
}

func (j *SessionJanitor) loop() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			j.logger.Info().Msg("session janitor stopped")
			return
		case <-ticker.C:
			if pruned := j.pruner.Prune(); pruned > 0 {
				j.logger.Debug().Int("pruned", pruned).Msg("expired sessions swept")
			}
		}
	}
}
