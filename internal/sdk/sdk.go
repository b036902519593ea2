// Package sdk describes the parts of the WCH CH5xx peripheral library the
// timer aliases forward to. The library itself is supplied by the vendor;
// nothing in this repository implements it apart from the recording
// simulator in sdk/sim.
package sdk

import (
	"errors"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

// ErrUnsupported is returned by a peripheral lacking the requested feature,
// e.g. DMACfg on TMR0 or TMR3.
var ErrUnsupported = errors.New("unsupported")

type GPIOMode uint8

const (
	GPIOModeINFloating GPIOMode = iota
	GPIOModeINPU
	GPIOModeINPD
	GPIOModeOutPP5mA
	GPIOModeOutPP20mA
)

type CapMode uint8

const (
	CapNull CapMode = iota
	EdgeToEdge
	FallEdgeToFallEdge
	RiseEdgeToRiseEdge
)

type PWMPolarity uint8

const (
	HighLevel PWMPolarity = iota
	LowLevel
)

type PWMRepeat uint8

const (
	PWMTimes1 PWMRepeat = iota
	PWMTimes4
	PWMTimes8
	PWMTimes16
)

type DMAMode uint8

const (
	ModeSingle DMAMode = iota
	ModeLoop
)

// Interrupt flags shared by TMR0..TMR3 (TMR0_3_IT_*); DMAEnd exists on TMR1/TMR2 only.
const (
	ITCycEnd  uint8 = 0x01
	ITDataAct uint8 = 0x02
	ITFIFOHF  uint8 = 0x04
	ITDMAEnd  uint8 = 0x08
	ITFIFOOV  uint8 = 0x10
)

// Timer is one concrete timer peripheral, TMR0..TMR3.
type Timer interface {
	Enable()
	Disable()
	TimerInit(t uint32)
	CurrentCount() uint32
	CurrentTimer() uint32
	CountOverflowCfg(cyc uint32)
	EXTSingleCounterInit(cap CapMode)
	DMACfg(enable bool, startAddr, endAddr uint16, mode DMAMode) error

	CapInit(cap CapMode)
	CAPTimeoutCfg(cyc uint32)
	CAPGetData() uint32
	CAPDataCounter() uint8

	PWMInit(pr PWMPolarity, ts PWMRepeat)
	PWMCycleCfg(cyc uint32)
	PWMActDataWidth(d uint32)

	ITCfg(enable bool, flags uint8)
	ITFlag(flags uint8) uint8
	ClearITFlag(flags uint8)

	// SetIRQHandler installs fn as the TMRn_IRQHandler entry point.
	SetIRQHandler(fn func())
}

// Port is one GPIO bank. Pins are addressed by GPIO_Pin_n bitmask.
type Port interface {
	ModeCfg(pins uint32, mode GPIOMode)
	SetBits(pins uint32)
	ResetBits(pins uint32)
}

// Driver gives access to the concrete peripherals, the PFIC and the pin
// remap register.
type Driver interface {
	Timer(t model.Target) Timer
	Port(b model.Bank) Port
	EnableIRQ(irq model.IRQn)
	DisableIRQ(irq model.IRQn)
	PinRemap(enable bool, sel model.RemapSelector)
}
