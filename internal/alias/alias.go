// Package alias binds the logical timers A-D to concrete CH5xx timer
// peripherals. A Set is resolved once from configuration and never changes
// afterwards; every Timer in it forwards straight to the peripheral it was
// bound to.
package alias

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/tmr-alias/internal/config"
	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/pinmap"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

var (
	ErrNoDriver     = errors.New("no peripheral driver")
	ErrSharedTarget = errors.New("logical timers share a peripheral")
)

type Options struct {
	// Strict rejects two logical timers bound to the same peripheral.
	Strict bool
}

type Set struct {
	timers [4]*Timer
}

// Resolve binds all four logical timers. It fails on the first logical
// timer whose target is out of range; it never falls back to a default.
func Resolve(timers config.Timers, drv sdk.Driver, opts Options) (*Set, error) {
	if drv == nil {
		return nil, ErrNoDriver
	}

	bindings, err := Bindings(timers, opts)
	if err != nil {
		return nil, err
	}

	s := &Set{}
	for _, b := range bindings {
		s.timers[b.Logical] = newTimer(b, drv)
		log.Debug().
			Str("logical", b.Logical.Prefix()).
			Str("target", b.Target.Name()).
			Str("pin", b.Pin.Name()).
			Bool("alt_pin", b.AltPin).
			Msg("Resolved timer alias")
	}
	return s, nil
}

// Bindings resolves the configuration without touching any driver.
func Bindings(timers config.Timers, opts Options) ([]model.Binding, error) {
	out := make([]model.Binding, 0, len(model.Logicals))
	owner := map[model.Target]model.Logical{}
	for _, l := range model.Logicals {
		b, err := pinmap.Bind(l, timers.TargetOf(l), timers.AltPinOf(l))
		if err != nil {
			return nil, err
		}
		if other, ok := owner[b.Target]; ok && opts.Strict {
			return nil, fmt.Errorf("%w: tmr.%s and tmr.%s both target %s", ErrSharedTarget, other, l, b.Target.Name())
		}
		if _, ok := owner[b.Target]; !ok {
			owner[b.Target] = l
		}
		out = append(out, b)
	}
	return out, nil
}

// Timer returns the forwards of logical timer l, nil if l is not A-D.
func (s *Set) Timer(l model.Logical) *Timer {
	if !l.Valid() {
		return nil
	}
	return s.timers[l]
}

func (s *Set) A() *Timer { return s.timers[model.TimerA] }
func (s *Set) B() *Timer { return s.timers[model.TimerB] }
func (s *Set) C() *Timer { return s.timers[model.TimerC] }
func (s *Set) D() *Timer { return s.timers[model.TimerD] }

func (s *Set) Bindings() []model.Binding {
	out := make([]model.Binding, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, t.binding)
	}
	return out
}
