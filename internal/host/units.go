package host

import (
	"fmt"
	"log/slog"
)

// WithRulerUnits switches the host's ruler units for the duration of fn and
// restores the previous value on every exit path, including a panic in fn.
// A restore failure is reported only when fn itself succeeded.
func WithRulerUnits(h Host, units Units, fn func() error) (err error) {
	previous := h.RulerUnits()
	if previous != units {
		if err := h.SetRulerUnits(units); err != nil {
			return fmt.Errorf("failed to set ruler units to %s: %w", units, err)
		}
	}

	defer func() {
		if previous == units {
			return
		}
		if rerr := h.SetRulerUnits(previous); rerr != nil {
			slog.Error("Failed to restore ruler units", "units", previous, "err", rerr)
			if err == nil {
				err = fmt.Errorf("failed to restore ruler units to %s: %w", previous, rerr)
			}
		}
	}()

	return fn()
}
