package sdk

// Param is one argument of a vendor timer function.
type Param struct {
	Name  string
	CType string
	// GoType is the binding type; Vendor marks it as declared by the SDK package.
	GoType string
	Vendor bool
}

// Op is one per-peripheral timer function, TMRn_<Vendor>.
type Op struct {
	Vendor   string // suffix in the vendor name, e.g. "GetCurrentCount"
	Method   string // method on Timer
	Params   []Param
	CResult  string
	GoResult string
	DMAOnly  bool
}

var (
	pCyc   = Param{Name: "cyc", CType: "uint32_t", GoType: "uint32"}
	pCap   = Param{Name: "cap", CType: "CapModeTypeDef", GoType: "CapModeTypeDef", Vendor: true}
	pState = Param{Name: "s", CType: "FunctionalState", GoType: "FunctionalState", Vendor: true}
	pFlags = Param{Name: "f", CType: "uint8_t", GoType: "uint8"}
)

// Ops lists every timer function a logical timer forwards, in the order
// of the vendor header.
var Ops = []Op{
	{Vendor: "Enable", Method: "Enable"},
	{Vendor: "Disable", Method: "Disable"},
	{Vendor: "TimerInit", Method: "TimerInit", Params: []Param{{Name: "t", CType: "uint32_t", GoType: "uint32"}}},
	{Vendor: "GetCurrentCount", Method: "CurrentCount", CResult: "uint32_t", GoResult: "uint32"},
	{Vendor: "GetCurrentTimer", Method: "CurrentTimer", CResult: "uint32_t", GoResult: "uint32"},
	{Vendor: "CountOverflowCfg", Method: "CountOverflowCfg", Params: []Param{pCyc}},
	{Vendor: "EXTSingleCounterInit", Method: "EXTSingleCounterInit", Params: []Param{pCap}},
	{Vendor: "DMACfg", Method: "DMACfg", DMAOnly: true, Params: []Param{
		pState,
		{Name: "startAddr", CType: "uint16_t", GoType: "uint16"},
		{Name: "endAddr", CType: "uint16_t", GoType: "uint16"},
		{Name: "m", CType: "DMAModeTypeDef", GoType: "DMAModeTypeDef", Vendor: true},
	}},

	{Vendor: "CapInit", Method: "CapInit", Params: []Param{pCap}},
	{Vendor: "CAPTimeoutCfg", Method: "CAPTimeoutCfg", Params: []Param{pCyc}},
	{Vendor: "CAPGetData", Method: "CAPGetData", CResult: "uint32_t", GoResult: "uint32"},
	{Vendor: "CAPDataCounter", Method: "CAPDataCounter", CResult: "uint8_t", GoResult: "uint8"},

	{Vendor: "PWMInit", Method: "PWMInit", Params: []Param{
		{Name: "pr", CType: "PWMX_PolarTypeDef", GoType: "PWMX_PolarTypeDef", Vendor: true},
		{Name: "ts", CType: "PWM_RepeatTsTypeDef", GoType: "PWM_RepeatTsTypeDef", Vendor: true},
	}},
	{Vendor: "PWMCycleCfg", Method: "PWMCycleCfg", Params: []Param{pCyc}},
	{Vendor: "PWMActDataWidth", Method: "PWMActDataWidth", Params: []Param{{Name: "d", CType: "uint32_t", GoType: "uint32"}}},

	{Vendor: "ITCfg", Method: "ITCfg", Params: []Param{pState, pFlags}},
	{Vendor: "GetITFlag", Method: "ITFlag", Params: []Param{pFlags}, CResult: "uint8_t", GoResult: "uint8"},
	{Vendor: "ClearITFlag", Method: "ClearITFlag", Params: []Param{pFlags}},
}

// OpsFor returns the ops the given peripheral provides.
func OpsFor(hasDMA bool) []Op {
	out := make([]Op, 0, len(Ops))
	for _, op := range Ops {
		if op.DMAOnly && !hasDMA {
			continue
		}
		out = append(out, op)
	}
	return out
}

// GPIO helpers generated per logical timer, forwarding to GPIOx_<Vendor>.
const (
	GPIOModeCfg   = "ModeCfg"
	GPIOSetBits   = "SetBits"
	GPIOResetBits = "ResetBits"
)
