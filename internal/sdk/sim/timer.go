package sim

import (
	"sync"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

type timer struct {
	d      *Driver
	target model.Target
	dma    bool

	mu      sync.Mutex
	enabled bool
	count   uint32
	cycle   uint32
	capMode sdk.CapMode
	timeout uint32
	fifo    []uint32
	width   uint32
	itMask  uint8
	flags   uint8
	handler func()
}

var _ sdk.Timer = (*timer)(nil)

func (t *timer) fn(name string) string {
	return t.target.Name() + "_" + name
}

func (t *timer) Enable() {
	t.d.record(t.fn("Enable"))
	t.mu.Lock()
	t.enabled = true
	t.mu.Unlock()
}

func (t *timer) Disable() {
	t.d.record(t.fn("Disable"))
	t.mu.Lock()
	t.enabled = false
	t.mu.Unlock()
}

// TimerInit sets the period and starts counting, like the vendor routine.
func (t *timer) TimerInit(cyc uint32) {
	t.d.record(t.fn("TimerInit"), cyc)
	t.mu.Lock()
	t.cycle = cyc
	t.count = 0
	t.enabled = true
	t.mu.Unlock()
}

func (t *timer) CurrentCount() uint32 {
	t.d.record(t.fn("GetCurrentCount"))
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *timer) CurrentTimer() uint32 {
	t.d.record(t.fn("GetCurrentTimer"))
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *timer) CountOverflowCfg(cyc uint32) {
	t.d.record(t.fn("CountOverflowCfg"), cyc)
	t.mu.Lock()
	t.cycle = cyc
	t.mu.Unlock()
}

func (t *timer) EXTSingleCounterInit(cap sdk.CapMode) {
	t.d.record(t.fn("EXTSingleCounterInit"), cap)
	t.mu.Lock()
	t.capMode = cap
	t.count = 0
	t.enabled = true
	t.mu.Unlock()
}

func (t *timer) DMACfg(enable bool, startAddr, endAddr uint16, mode sdk.DMAMode) error {
	if !t.dma {
		return sdk.ErrUnsupported
	}
	t.d.record(t.fn("DMACfg"), enable, startAddr, endAddr, mode)
	return nil
}

func (t *timer) CapInit(cap sdk.CapMode) {
	t.d.record(t.fn("CapInit"), cap)
	t.mu.Lock()
	t.capMode = cap
	t.fifo = nil
	t.enabled = true
	t.mu.Unlock()
}

func (t *timer) CAPTimeoutCfg(cyc uint32) {
	t.d.record(t.fn("CAPTimeoutCfg"), cyc)
	t.mu.Lock()
	t.timeout = cyc
	t.mu.Unlock()
}

// CAPGetData pops the oldest captured value, 0 when the FIFO is empty.
func (t *timer) CAPGetData() uint32 {
	t.d.record(t.fn("CAPGetData"))
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.fifo) == 0 {
		return 0
	}
	v := t.fifo[0]
	t.fifo = t.fifo[1:]
	return v
}

func (t *timer) CAPDataCounter() uint8 {
	t.d.record(t.fn("CAPDataCounter"))
	t.mu.Lock()
	defer t.mu.Unlock()
	return uint8(len(t.fifo))
}

func (t *timer) PWMInit(pr sdk.PWMPolarity, ts sdk.PWMRepeat) {
	t.d.record(t.fn("PWMInit"), pr, ts)
}

func (t *timer) PWMCycleCfg(cyc uint32) {
	t.d.record(t.fn("PWMCycleCfg"), cyc)
	t.mu.Lock()
	t.cycle = cyc
	t.mu.Unlock()
}

func (t *timer) PWMActDataWidth(d uint32) {
	t.d.record(t.fn("PWMActDataWidth"), d)
	t.mu.Lock()
	t.width = d
	t.mu.Unlock()
}

func (t *timer) ITCfg(enable bool, flags uint8) {
	t.d.record(t.fn("ITCfg"), enable, flags)
	t.mu.Lock()
	if enable {
		t.itMask |= flags
	} else {
		t.itMask &^= flags
	}
	t.mu.Unlock()
}

func (t *timer) ITFlag(flags uint8) uint8 {
	t.d.record(t.fn("GetITFlag"), flags)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags & flags
}

func (t *timer) ClearITFlag(flags uint8) {
	t.d.record(t.fn("ClearITFlag"), flags)
	t.mu.Lock()
	t.flags &^= flags
	t.mu.Unlock()
}

func (t *timer) SetIRQHandler(fn func()) {
	t.d.record(t.fn("IRQHandler"))
	t.mu.Lock()
	t.handler = fn
	t.mu.Unlock()
}
