package alias

import (
	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

// Timer is logical timer A, B, C or D. The peripheral operations of
// sdk.Timer are promoted from the bound peripheral unchanged; the GPIO,
// PFIC and remap helpers are addressed with the resolved pin, IRQ number
// and remap selector.
type Timer struct {
	sdk.Timer

	binding model.Binding
	port    sdk.Port
	drv     sdk.Driver
}

func newTimer(b model.Binding, drv sdk.Driver) *Timer {
	return &Timer{
		Timer:   drv.Timer(b.Target),
		binding: b,
		port:    drv.Port(b.Pin.Bank),
		drv:     drv,
	}
}

func (t *Timer) Logical() model.Logical { return t.binding.Logical }
func (t *Timer) Target() model.Target   { return t.binding.Target }
func (t *Timer) Pin() model.Pin         { return t.binding.Pin }
func (t *Timer) AltPin() bool           { return t.binding.AltPin }
func (t *Timer) Binding() model.Binding { return t.binding }

// PinName is the pin as printed on the datasheet, e.g. "PB23".
func (t *Timer) PinName() string { return t.binding.Pin.Name() }

// MaybePinRemap switches the peripheral to its alternate pin when the
// binding asks for it and does nothing otherwise. It must run before the
// first GPIO call on the pin. There is no way back to the default pin.
func (t *Timer) MaybePinRemap() {
	if !t.binding.AltPin {
		return
	}
	t.drv.PinRemap(true, t.binding.Remap)
}

func (t *Timer) GPIOModeCfg(mode sdk.GPIOMode) {
	t.port.ModeCfg(t.binding.Pin.Mask(), mode)
}

func (t *Timer) GPIOSetBit() {
	t.port.SetBits(t.binding.Pin.Mask())
}

func (t *Timer) GPIOResetBit() {
	t.port.ResetBits(t.binding.Pin.Mask())
}

// EnableIRQ enables the peripheral's interrupt line in the PFIC.
func (t *Timer) EnableIRQ() {
	t.drv.EnableIRQ(t.binding.IRQ)
}

func (t *Timer) DisableIRQ() {
	t.drv.DisableIRQ(t.binding.IRQ)
}
