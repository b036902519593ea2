// Package codegen writes the resolved timer aliases as source code, so the
// forwards cost nothing at run time: every logical name is a plain
// substitution for the concrete peripheral name.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/pinmap"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Options struct {
	// Package and SDKImport are used by the Go emitter only.
	Package   string
	SDKImport string
	// Source names the configuration the output was generated from.
	Source string
}

// Emitter renders a complete set of bindings in one output format.
type Emitter interface {
	Name() string
	Emit(out io.Writer, bindings []model.Binding, opts Options) error
}

var emitters = map[string]Emitter{}

// Register adds an emitter, replacing any with the same name.
func Register(e Emitter) {
	emitters[e.Name()] = e
}

// Find returns the emitter for a format name, or nil.
func Find(name string) Emitter {
	return emitters[name]
}

// Names returns the registered format names, sorted.
func Names() []string {
	var l []string
	for n := range emitters {
		l = append(l, n)
	}
	sort.Strings(l)
	return l
}

func init() {
	Register(cEmitter{})
	Register(goEmitter{})
}

// Generate checks the bindings against the pin table and renders them.
// Nothing is written to out unless rendering succeeds.
func Generate(out io.Writer, format string, bindings []model.Binding, opts Options) error {
	e := Find(format)
	if e == nil {
		return fmt.Errorf("%w %q (available: %v)", ErrUnknownFormat, format, Names())
	}
	if err := check(bindings); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := e.Emit(&buf, bindings, opts); err != nil {
		return fmt.Errorf("failed to generate %s output: %w", format, err)
	}
	_, err := out.Write(buf.Bytes())
	return err
}

func check(bindings []model.Binding) error {
	if len(bindings) != len(model.Logicals) {
		return fmt.Errorf("expected %d bindings, got %d", len(model.Logicals), len(bindings))
	}
	for i, b := range bindings {
		if b.Logical != model.Logicals[i] {
			return fmt.Errorf("binding %d is %s, expected %s", i, b.Logical.Prefix(), model.Logicals[i].Prefix())
		}
		want, err := pinmap.Bind(b.Logical, b.Target, b.AltPin)
		if err != nil {
			return err
		}
		if want != b {
			return fmt.Errorf("tmr.%s: binding %v does not match pin table (%v)", b.Logical, b, want)
		}
	}
	return nil
}

// view is what the templates see of one binding.
type view struct {
	model.Binding
	Prefix string
	Ops    []sdk.Op
}

func views(bindings []model.Binding) []view {
	out := make([]view, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, view{
			Binding: b,
			Prefix:  b.Logical.Prefix(),
			Ops:     sdk.OpsFor(b.DMA),
		})
	}
	return out
}

type data struct {
	Options
	Timers []view
}

func render(out io.Writer, tmpl *template.Template, bindings []model.Binding, opts Options) error {
	return tmpl.Execute(out, data{Options: opts, Timers: views(bindings)})
}
