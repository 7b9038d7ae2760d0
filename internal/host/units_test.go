package host_test

import (
	"errors"
	"testing"

	"github.com/lehigh-university-libraries/contactsheet/internal/host"
	"github.com/lehigh-university-libraries/contactsheet/internal/host/hosttest"
)

func TestWithRulerUnitsRestores(t *testing.T) {
	rec := hosttest.New()

	var during host.Units
	err := host.WithRulerUnits(rec, host.UnitsPixels, func() error {
		during = rec.RulerUnits()
		return nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if during != host.UnitsPixels {
		t.Errorf("Expected pixels inside scope, got %s", during)
	}
	if rec.RulerUnits() != host.UnitsInches {
		t.Errorf("Expected inches restored, got %s", rec.RulerUnits())
	}
}

func TestWithRulerUnitsRestoresOnError(t *testing.T) {
	rec := hosttest.New()
	boom := errors.New("boom")

	err := host.WithRulerUnits(rec, host.UnitsPixels, func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
	if rec.RulerUnits() != host.UnitsInches {
		t.Errorf("Expected inches restored, got %s", rec.RulerUnits())
	}
}

func TestWithRulerUnitsRestoresOnPanic(t *testing.T) {
	rec := hosttest.New()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		_ = host.WithRulerUnits(rec, host.UnitsPixels, func() error { panic("host crashed") })
	}()

	if rec.RulerUnits() != host.UnitsInches {
		t.Errorf("Expected inches restored after panic, got %s", rec.RulerUnits())
	}
}

func TestWithRulerUnitsNoopWhenAlreadySet(t *testing.T) {
	rec := hosttest.New()
	rec.Units = host.UnitsPixels

	if err := host.WithRulerUnits(rec, host.UnitsPixels, func() error { return nil }); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n := rec.Count(hosttest.OpSetRulerUnits); n != 0 {
		t.Errorf("Expected no setRulerUnits calls, got %d", n)
	}
}

func TestWithRulerUnitsRestoreFailure(t *testing.T) {
	rec := hosttest.New()
	restoreErr := errors.New("preferences locked")
	rec.FailOn(hosttest.OpSetRulerUnits, 2, restoreErr)

	err := host.WithRulerUnits(rec, host.UnitsPixels, func() error { return nil })
	if !errors.Is(err, restoreErr) {
		t.Errorf("Expected restore error, got %v", err)
	}
}

func TestParseModeAndFill(t *testing.T) {
	if m, err := host.ParseMode(""); err != nil || m != host.ModeRGB {
		t.Errorf("Expected default rgb, got %s (%v)", m, err)
	}
	if _, err := host.ParseMode("cmyk"); err == nil {
		t.Error("Expected error for cmyk")
	}
	if f, err := host.ParseFill("black"); err != nil || f != host.FillBlack {
		t.Errorf("Expected black, got %s (%v)", f, err)
	}
	if _, err := host.ParseFill("plaid"); err == nil {
		t.Error("Expected error for plaid")
	}
}
