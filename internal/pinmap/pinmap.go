package pinmap

import (
	"errors"
	"fmt"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

var ErrUnknownTarget = errors.New("unknown timer target")

type entry struct {
	Default model.Pin
	Alt     model.Pin
	IRQ     model.IRQn
	Remap   model.RemapSelector
	DMA     bool
}

// CH5xx timer pins as listed in the datasheet pin alternate table.
var table = [...]entry{
	0: {Default: model.Pin{Bank: model.BankA, Number: 9}, Alt: model.Pin{Bank: model.BankB, Number: 23}, IRQ: 16, Remap: 0x01},
	1: {Default: model.Pin{Bank: model.BankA, Number: 10}, Alt: model.Pin{Bank: model.BankB, Number: 10}, IRQ: 24, Remap: 0x02, DMA: true},
	2: {Default: model.Pin{Bank: model.BankA, Number: 11}, Alt: model.Pin{Bank: model.BankB, Number: 11}, IRQ: 25, Remap: 0x04, DMA: true},
	3: {Default: model.Pin{Bank: model.BankB, Number: 22}, Alt: model.Pin{Bank: model.BankA, Number: 2}, IRQ: 32, Remap: 0x08},
}

func lookup(t model.Target) (entry, error) {
	if !t.Valid() {
		return entry{}, fmt.Errorf("%w: %d (valid range 0-%d)", ErrUnknownTarget, int(t), int(model.MaxTarget))
	}
	return table[t], nil
}

// Resolve returns the pin the target drives, the alternate pin when alt is set.
func Resolve(t model.Target, alt bool) (model.Pin, error) {
	e, err := lookup(t)
	if err != nil {
		return model.Pin{}, err
	}
	if alt {
		return e.Alt, nil
	}
	return e.Default, nil
}

func IRQ(t model.Target) (model.IRQn, error) {
	e, err := lookup(t)
	return e.IRQ, err
}

func RemapSelector(t model.Target) (model.RemapSelector, error) {
	e, err := lookup(t)
	return e.Remap, err
}

// HasDMA reports whether the peripheral has a DMA channel. Only TMR1 and TMR2 do.
func HasDMA(t model.Target) bool {
	e, err := lookup(t)
	return err == nil && e.DMA
}

// Bind resolves everything a logical timer needs from its target and pin flag.
func Bind(l model.Logical, t model.Target, alt bool) (model.Binding, error) {
	e, err := lookup(t)
	if err != nil {
		return model.Binding{}, fmt.Errorf("tmr.%s: %w", l, err)
	}
	pin := e.Default
	if alt {
		pin = e.Alt
	}
	return model.Binding{
		Logical: l,
		Target:  t,
		AltPin:  alt,
		Pin:     pin,
		IRQ:     e.IRQ,
		Remap:   e.Remap,
		DMA:     e.DMA,
	}, nil
}

// Targets returns every valid peripheral index.
func Targets() []model.Target {
	out := make([]model.Target, 0, len(table))
	for i := range table {
		out = append(out, model.Target(i))
	}
	return out
}
