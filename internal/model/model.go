package model

import "fmt"

type Logical int

const (
	TimerA Logical = iota
	TimerB
	TimerC
	TimerD
)

// Logicals lists the four logical timers in declaration order.
var Logicals = []Logical{TimerA, TimerB, TimerC, TimerD}

func (l Logical) Valid() bool {
	return l >= TimerA && l <= TimerD
}

func (l Logical) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Logical(%d)", int(l))
	}
	return string(rune('A' + int(l)))
}

// Prefix is the name every forward of this timer starts with, e.g. "TMRA".
func (l Logical) Prefix() string {
	return "TMR" + l.String()
}

// ParseLogical accepts "A".."D" in either case.
func ParseLogical(s string) (Logical, error) {
	if len(s) == 1 {
		c := s[0] &^ 0x20
		if c >= 'A' && c <= 'D' {
			return Logical(c - 'A'), nil
		}
	}
	return 0, fmt.Errorf("unknown logical timer %q", s)
}

// Target is the index of a physical timer peripheral.
type Target int

const MaxTarget Target = 3

func (t Target) Valid() bool {
	return t >= 0 && t <= MaxTarget
}

// Name is the vendor peripheral name, e.g. "TMR2".
func (t Target) Name() string {
	return fmt.Sprintf("TMR%d", int(t))
}

type Bank byte

const (
	BankA Bank = 'A'
	BankB Bank = 'B'
)

func (b Bank) String() string {
	return string(rune(b))
}

type Pin struct {
	Bank   Bank `json:"bank"`
	Number int  `json:"number"`
}

// Name is the datasheet pin name, e.g. "PA9".
func (p Pin) Name() string {
	return fmt.Sprintf("P%s%d", p.Bank, p.Number)
}

// Mask is the GPIO_Pin_n bitmask the vendor GPIO functions expect.
func (p Pin) Mask() uint32 {
	return 1 << uint(p.Number)
}

func (p Pin) String() string {
	return p.Name()
}

// IRQn is an interrupt number understood by the PFIC.
type IRQn uint8

// RemapSelector is a bit of R16_PIN_ALTERNATE passed to GPIOPinRemap.
type RemapSelector uint16

// Binding is the resolved mapping of one logical timer.
type Binding struct {
	Logical Logical       `json:"logical"`
	Target  Target        `json:"target"`
	AltPin  bool          `json:"alt_pin"`
	Pin     Pin           `json:"pin"`
	IRQ     IRQn          `json:"irq"`
	Remap   RemapSelector `json:"remap"`
	DMA     bool          `json:"dma"`
}

func (b Binding) String() string {
	alt := ""
	if b.AltPin {
		alt = " (alt)"
	}
	return fmt.Sprintf("%s -> %s on %s%s", b.Logical.Prefix(), b.Target.Name(), b.Pin.Name(), alt)
}
