package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// TestMode switches output to target for a bounded window and then switches
// it back to fallback.
//
// The window is timed on its own goroutine, started before the switch, so a
// slow switch cannot extend it. The revert runs exactly once after the window
// whether or not the switch to target succeeded, and it is not tied to ctx so
// an interrupt still restores the fallback. Errors from both switches are
// returned together.
func (s *Service) TestMode(ctx context.Context, target, fallback TimingMode, output, timeout string) (err error) {
	started := s.clock.Now()
	defer func() {
		s.record(OperationTest, target.Name, output, started, err, "")
	}()

	seconds, ok := ParseTimeout(timeout)
	if !ok {
		s.logger.Warn("timeout must be an integer greater than zero, using default",
			"timeout", timeout, "default", DefaultTimeoutSeconds)
	}
	window := time.Duration(seconds) * time.Second
	s.logger.Info("testing mode", "mode", target.Name, "output", output, "seconds", seconds)

	countdownCtx, stopCountdown := context.WithCancel(ctx)
	defer stopCountdown()
	if s.countdown != nil {
		go countdown(countdownCtx, s.countdown, seconds)
	}

	elapsed := make(chan struct{})
	go func() {
		defer close(elapsed)
		s.sleeper.Sleep(ctx, window)
	}()

	switchErr := s.applier.Switch(ctx, target.Name, output)
	if switchErr != nil {
		s.logger.Error("switching to tested mode failed", "mode", target.Name, "output", output, "error", switchErr)
		switchErr = fmt.Errorf("switching %s to %s: %w", output, target.Name, switchErr)
	}

	<-elapsed

	s.logger.Info("reverting mode", "mode", fallback.Name, "output", output)
	revertErr := s.applier.Switch(context.WithoutCancel(ctx), fallback.Name, output)
	if revertErr != nil {
		s.logger.Error("reverting to fallback mode failed", "mode", fallback.Name, "output", output, "error", revertErr)
		revertErr = fmt.Errorf("reverting %s to %s: %w", output, fallback.Name, revertErr)
	}

	return errors.Join(switchErr, revertErr)
}

// countdown prints the remaining test window once per second until it runs
// out or ctx is cancelled. It is started without being joined; output may be
// cut short when the process exits.
func countdown(ctx context.Context, w io.Writer, seconds int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for remaining := seconds; remaining > 0; remaining-- {
		fmt.Fprintf(w, "Reverting in %d secs\n", remaining)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
