package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ridedispatch/internal/config"
)

func TestSupervisorRestartsPanickedLoop(t *testing.T) {
	var starts atomic.Int32
	loop := Loop{
		Name: "flaky",
		Run: func(ctx context.Context) {
			if starts.Add(1) == 1 {
				panic("boom")
			}
			<-ctx.Done()
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	s := NewSupervisor(config.DispatchConfig{RestartDelay: 10 * time.Millisecond}, zerolog.Nop(), loop)
	s.Run(ctx)

	if got := starts.Load(); got < 2 {
		t.Fatalf("expected the loop to be restarted after the panic, got %d starts", got)
	}
}

func TestSupervisorStopsAllLoopsOnCancel(t *testing.T) {
	var running atomic.Int32
	mk := func(name string) Loop {
		return Loop{
			Name: name,
			Run: func(ctx context.Context) {
				running.Add(1)
				defer running.Add(-1)
				<-ctx.Done()
			},
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSupervisor(config.DispatchConfig{RestartDelay: 10 * time.Millisecond}, zerolog.Nop(), mk("matcher"), mk("completer"))

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop after cancel")
	}
	if running.Load() != 0 {
		t.Fatalf("expected all loops stopped, %d still running", running.Load())
	}
}
