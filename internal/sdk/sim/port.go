package sim

import (
	"math/bits"
	"sync"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

type port struct {
	d    *Driver
	bank model.Bank

	mu    sync.Mutex
	modes map[int]sdk.GPIOMode
	out   uint32
}

var _ sdk.Port = (*port)(nil)

func (p *port) fn(name string) string {
	return "GPIO" + p.bank.String() + "_" + name
}

func (p *port) ModeCfg(pins uint32, mode sdk.GPIOMode) {
	p.d.record(p.fn("ModeCfg"), pins, mode)
	p.mu.Lock()
	defer p.mu.Unlock()
	for pins != 0 {
		n := bits.TrailingZeros32(pins)
		p.modes[n] = mode
		pins &^= 1 << uint(n)
	}
}

func (p *port) SetBits(pins uint32) {
	p.d.record(p.fn("SetBits"), pins)
	p.mu.Lock()
	p.out |= pins
	p.mu.Unlock()
}

func (p *port) ResetBits(pins uint32) {
	p.d.record(p.fn("ResetBits"), pins)
	p.mu.Lock()
	p.out &^= pins
	p.mu.Unlock()
}
