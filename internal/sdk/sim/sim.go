// Package sim is an in-memory stand-in for the CH5xx peripheral library.
// It records every call under its vendor name so tests and dry runs can
// check which concrete function a forward reached.
package sim

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/pinmap"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

// Call is one vendor function invocation, e.g. {"TMR1_PWMInit", [HighLevel PWMTimes4]}.
type Call struct {
	Fn   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Fn, c.Args)
}

type Driver struct {
	mu       sync.Mutex
	calls    []Call
	timers   map[model.Target]*timer
	ports    map[model.Bank]*port
	irqs     map[model.IRQn]bool
	remapped model.RemapSelector
}

var _ sdk.Driver = (*Driver)(nil)

func New() *Driver {
	d := &Driver{
		timers: make(map[model.Target]*timer),
		ports:  make(map[model.Bank]*port),
		irqs:   make(map[model.IRQn]bool),
	}
	for _, t := range pinmap.Targets() {
		d.timers[t] = &timer{d: d, target: t, dma: pinmap.HasDMA(t)}
	}
	for _, b := range []model.Bank{model.BankA, model.BankB} {
		d.ports[b] = &port{d: d, bank: b, modes: make(map[int]sdk.GPIOMode)}
	}
	return d
}

func (d *Driver) record(fn string, args ...any) {
	d.mu.Lock()
	d.calls = append(d.calls, Call{Fn: fn, Args: args})
	d.mu.Unlock()

	log.Debug().Str("fn", fn).Interface("args", args).Msg("sdk call")
}

// Calls returns a copy of the recorded calls.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *Driver) Reset() {
	d.mu.Lock()
	d.calls = nil
	d.mu.Unlock()
}

// Timer returns nil for a target the chip does not have.
func (d *Driver) Timer(t model.Target) sdk.Timer {
	tm, ok := d.timers[t]
	if !ok {
		return nil
	}
	return tm
}

func (d *Driver) Port(b model.Bank) sdk.Port {
	p, ok := d.ports[b]
	if !ok {
		return nil
	}
	return p
}

func (d *Driver) EnableIRQ(irq model.IRQn) {
	d.record("PFIC_EnableIRQ", irq)
	d.mu.Lock()
	d.irqs[irq] = true
	d.mu.Unlock()
}

func (d *Driver) DisableIRQ(irq model.IRQn) {
	d.record("PFIC_DisableIRQ", irq)
	d.mu.Lock()
	d.irqs[irq] = false
	d.mu.Unlock()
}

func (d *Driver) IRQEnabled(irq model.IRQn) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.irqs[irq]
}

// PinRemap mirrors GPIOPinRemap: it sets or clears bits of R16_PIN_ALTERNATE.
func (d *Driver) PinRemap(enable bool, sel model.RemapSelector) {
	d.record("GPIOPinRemap", enable, sel)
	d.mu.Lock()
	if enable {
		d.remapped |= sel
	} else {
		d.remapped &^= sel
	}
	d.mu.Unlock()
}

func (d *Driver) Remapped() model.RemapSelector {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remapped
}

// Tick advances the counter of target t by n cycles, wrapping at the
// configured overflow and raising ITCycEnd.
func (d *Driver) Tick(t model.Target, n uint32) {
	tm := d.timers[t]
	if tm == nil {
		return
	}
	tm.mu.Lock()
	if !tm.enabled {
		tm.mu.Unlock()
		return
	}
	fire := false
	tm.count += n
	if tm.cycle > 0 && tm.count >= tm.cycle {
		tm.count %= tm.cycle
		tm.flags |= sdk.ITCycEnd
		fire = tm.itMask&sdk.ITCycEnd != 0
	}
	tm.mu.Unlock()
	if fire {
		d.raise(tm)
	}
}

// Capture queues a captured value on target t and raises ITDataAct.
func (d *Driver) Capture(t model.Target, v uint32) {
	tm := d.timers[t]
	if tm == nil {
		return
	}
	tm.mu.Lock()
	tm.fifo = append(tm.fifo, v)
	tm.flags |= sdk.ITDataAct
	fire := tm.itMask&sdk.ITDataAct != 0
	tm.mu.Unlock()
	if fire {
		d.raise(tm)
	}
}

// raise calls the installed handler when the PFIC line is enabled.
func (d *Driver) raise(tm *timer) {
	irq, _ := pinmap.IRQ(tm.target)
	if !d.IRQEnabled(irq) {
		return
	}
	tm.mu.Lock()
	h := tm.handler
	tm.mu.Unlock()
	if h != nil {
		h()
	}
}

// PinMode returns the mode last configured for a pin, and whether it was set.
func (d *Driver) PinMode(p model.Pin) (sdk.GPIOMode, bool) {
	pt := d.ports[p.Bank]
	pt.mu.Lock()
	defer pt.mu.Unlock()
	m, ok := pt.modes[p.Number]
	return m, ok
}

// PinLevel returns the output latch of a pin.
func (d *Driver) PinLevel(p model.Pin) bool {
	pt := d.ports[p.Bank]
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.out&p.Mask() != 0
}
