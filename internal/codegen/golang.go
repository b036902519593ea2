package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

const goSource = `// Code generated by tmralias{{with .Source}} from {{.}}{{end}}. DO NOT EDIT.
{{range .Timers}}
// {{.Binding}}
{{- end}}

package {{.Package}}

import sdk "{{.SDKImport}}"

const (
{{- range .Timers}}
	{{.Prefix}}_TARGET = {{.Target}}
	{{.Prefix}}_ALT_PIN = {{.AltPin}}
	{{.Prefix}}_GPIO_BANK = "{{.Pin.Bank}}"
	{{.Prefix}}_GPIO_PIN = {{.Pin.Number}}
	{{.Prefix}}_PIN_NAME = "{{.Pin.Name}}"
{{end -}}
)

// Compilation fails here if a target constant is edited outside 0-3.
const (
{{- range .Timers}}
	_ uint8 = {{.Prefix}}_TARGET
	_ uint8 = 3 - {{.Prefix}}_TARGET
{{- end}}
)
{{range .Timers}}{{$p := .Prefix}}{{$t := .Target}}
// {{$p}} -> TMR{{$t}}

func {{$p}}_GPIO_MaybePinRemap() {
{{- if .AltPin}}
	sdk.GPIOPinRemap(sdk.ENABLE, sdk.RB_PIN_TMR{{$t}})
{{end -}}
}

func {{$p}}_GPIO_ModeCfg(mode sdk.GPIOModeTypeDef) {
	sdk.GPIO{{.Pin.Bank}}_ModeCfg(sdk.GPIO_Pin_{{.Pin.Number}}, mode)
}

func {{$p}}_GPIO_SetBit() { sdk.GPIO{{.Pin.Bank}}_SetBits(sdk.GPIO_Pin_{{.Pin.Number}}) }

func {{$p}}_GPIO_ResetBit() { sdk.GPIO{{.Pin.Bank}}_ResetBits(sdk.GPIO_Pin_{{.Pin.Number}}) }
{{range .Ops}}
func {{$p}}_{{.Vendor}}({{params .}}){{result .}} {
	{{if .GoResult}}return {{end}}sdk.TMR{{$t}}_{{.Vendor}}({{args .}})
}
{{end}}
func {{$p}}_PFIC_EnableIRQ() { sdk.PFIC_EnableIRQ(sdk.TMR{{$t}}_IRQn) }

func {{$p}}_PFIC_DisableIRQ() { sdk.PFIC_DisableIRQ(sdk.TMR{{$t}}_IRQn) }

// {{$p}}_IRQHandler installs fn as the TMR{{$t}} interrupt entry point.
func {{$p}}_IRQHandler(fn func()) { sdk.TMR{{$t}}_IRQHandler(fn) }
{{end}}`

var goTemplate = template.Must(template.New("go").Funcs(template.FuncMap{
	"params": goParams,
	"args":   goArgs,
	"result": goResult,
}).Parse(goSource))

func goParams(op sdk.Op) string {
	parts := make([]string, 0, len(op.Params))
	for _, p := range op.Params {
		typ := p.GoType
		if p.Vendor {
			typ = "sdk." + typ
		}
		parts = append(parts, p.Name+" "+typ)
	}
	return strings.Join(parts, ", ")
}

func goArgs(op sdk.Op) string {
	parts := make([]string, 0, len(op.Params))
	for _, p := range op.Params {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

func goResult(op sdk.Op) string {
	if op.GoResult == "" {
		return ""
	}
	return " " + op.GoResult
}

// goEmitter writes forwarding functions against Go bindings of the vendor
// library. The functions are leaf calls the compiler inlines.
type goEmitter struct{}

func (goEmitter) Name() string { return "go" }

func (goEmitter) Emit(out io.Writer, bindings []model.Binding, opts Options) error {
	if opts.Package == "" || opts.SDKImport == "" {
		return fmt.Errorf("go output needs a package name and an SDK import path")
	}

	var buf bytes.Buffer
	if err := render(&buf, goTemplate, bindings, opts); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format generated code: %w", err)
	}
	_, err = out.Write(src)
	return err
}
