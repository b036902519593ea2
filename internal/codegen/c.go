package codegen

import (
	"io"
	"text/template"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

const cHeader = `/*
 * WCH CH5xx timer aliases.
 *
 * This file is auto-generated by tmralias{{with .Source}} from {{.}}{{end}} - do not edit!
 *
{{- range .Timers}}
 * {{.Binding}}
{{- end}}
 */

#ifndef __CH5xx_TIMER_ALIAS_H__
#define __CH5xx_TIMER_ALIAS_H__

#ifdef __cplusplus
extern "C" {
#endif
{{range .Timers}}{{$p := .Prefix}}{{$t := .Target}}
/* {{$p}} -> TMR{{$t}} */
#define {{$p}}_TARGET {{$t}}
#define {{$p}}_ALT_PIN {{if .AltPin}}TRUE{{else}}FALSE{{end}}
#define {{$p}}_GPIO_BANK {{.Pin.Bank}}
#define {{$p}}_GPIO_PIN {{.Pin.Number}}
#define {{$p}}_PIN_NAME "{{.Pin.Name}}"

{{if .AltPin -}}
#define {{$p}}_GPIO_MaybePinRemap() GPIOPinRemap(ENABLE, RB_PIN_TMR{{$t}})
{{- else -}}
#define {{$p}}_GPIO_MaybePinRemap()
{{- end}}
#define {{$p}}_GPIO_ModeCfg(ARG1) GPIO{{.Pin.Bank}}_ModeCfg(GPIO_Pin_{{.Pin.Number}}, ARG1)
#define {{$p}}_GPIO_SetBit() GPIO{{.Pin.Bank}}_SetBits(GPIO_Pin_{{.Pin.Number}})
#define {{$p}}_GPIO_ResetBit() GPIO{{.Pin.Bank}}_ResetBits(GPIO_Pin_{{.Pin.Number}})

{{range .Ops}}#define {{$p}}_{{.Vendor}} TMR{{$t}}_{{.Vendor}}
{{end -}}
#define {{$p}}_PFIC_EnableIRQ() PFIC_EnableIRQ(TMR{{$t}}_IRQn)
#define {{$p}}_PFIC_DisableIRQ() PFIC_DisableIRQ(TMR{{$t}}_IRQn)
#define {{$p}}_IRQHandler TMR{{$t}}_IRQHandler
{{end}}
#ifdef __cplusplus
}
#endif

#endif // __CH5xx_TIMER_ALIAS_H__
`

var cTemplate = template.Must(template.New("c").Parse(cHeader))

// cEmitter writes a flat header for the vendor C library. Unlike a header
// driven by #if chains, every name is already resolved.
type cEmitter struct{}

func (cEmitter) Name() string { return "c" }

func (cEmitter) Emit(out io.Writer, bindings []model.Binding, opts Options) error {
	return render(out, cTemplate, bindings, opts)
}
