// README: Supervisor; runs the worker loops and revives any that panic.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"ridedispatch/internal/config"
)

// Loop is a long-lived polling worker. Run must only return once ctx is done.
type Loop struct {
	Name string
	Run  func(ctx context.Context)
}

// Supervisor keeps the matching and completion loops alive. The loops share
// nothing in process; all coordination happens through the store's locks, so
// reviving one loop never needs the other's cooperation.
type Supervisor struct {
	cfg   config.DispatchConfig
	log   zerolog.Logger
	loops []Loop
}

func NewSupervisor(cfg config.DispatchConfig, log zerolog.Logger, loops ...Loop) *Supervisor {
	return &Supervisor{cfg: cfg, log: log, loops: loops}
}

// Run blocks until ctx is cancelled and every loop has stopped.
func (s *Supervisor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, l := range s.loops {
		wg.Add(1)
		go func(l Loop) {
			defer wg.Done()
			s.keepAlive(ctx, l)
		}(l)
	}
	wg.Wait()
}

func (s *Supervisor) keepAlive(ctx context.Context, l Loop) {
	for ctx.Err() == nil {
		err := s.runOnce(ctx, l)
		if ctx.Err() != nil {
			return
		}
		s.log.Error().Err(err).Str("worker", l.Name).Msg("worker crashed, restarting")
		sleep(ctx, s.cfg.RestartDelay)
	}
}

// runOnce converts a panic into an error so a crashing iteration restarts the
// loop instead of taking down the process.
func (s *Supervisor) runOnce(ctx context.Context, l Loop) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	l.Run(ctx)
	return nil
}
