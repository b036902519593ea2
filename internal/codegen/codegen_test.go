package codegen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
	"github.com/thatsimonsguy/tmr-alias/internal/pinmap"
	"github.com/thatsimonsguy/tmr-alias/internal/sdk"
)

type setting struct {
	target model.Target
	alt    bool
}

func bindings(t *testing.T, settings ...setting) []model.Binding {
	t.Helper()
	out := make([]model.Binding, 0, len(model.Logicals))
	for i, l := range model.Logicals {
		s := setting{target: model.Target(l)}
		if i < len(settings) {
			s = settings[i]
		}
		b, err := pinmap.Bind(l, s.target, s.alt)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

var goOpts = Options{Package: "board", SDKImport: "example.com/ch5xx", Source: "tmralias.yaml"}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"c", "go"}, Names())
	assert.NotNil(t, Find("c"))
	assert.Nil(t, Find("rust"))

	var buf bytes.Buffer
	err := Generate(&buf, "rust", bindings(t), Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}

func TestGenerateRejectsBadBindings(t *testing.T) {
	bs := bindings(t)
	bs[1].Target = 4

	var buf bytes.Buffer
	err := Generate(&buf, "c", bs, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmr.B")
	assert.Zero(t, buf.Len(), "nothing written on failure")

	bs = bindings(t)
	bs[2].Pin = model.Pin{Bank: model.BankA, Number: 3}
	err = Generate(&buf, "c", bs, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match pin table")

	err = Generate(&buf, "c", bs[:3], Options{})
	assert.Error(t, err)
}

func TestCHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, "c", bindings(t, setting{3, true}, setting{1, false}), Options{Source: "config.h"}))
	out := buf.String()

	for _, line := range []string{
		"auto-generated by tmralias from config.h",
		" * TMRA -> TMR3 on PA2 (alt)",
		"#define TMRA_TARGET 3",
		"#define TMRA_ALT_PIN TRUE",
		"#define TMRA_GPIO_BANK A",
		"#define TMRA_GPIO_PIN 2",
		`#define TMRA_PIN_NAME "PA2"`,
		"#define TMRA_GPIO_MaybePinRemap() GPIOPinRemap(ENABLE, RB_PIN_TMR3)\n",
		"#define TMRA_GPIO_ModeCfg(ARG1) GPIOA_ModeCfg(GPIO_Pin_2, ARG1)",
		"#define TMRA_GPIO_SetBit() GPIOA_SetBits(GPIO_Pin_2)",
		"#define TMRA_GPIO_ResetBit() GPIOA_ResetBits(GPIO_Pin_2)",
		"#define TMRA_Enable TMR3_Enable\n",
		"#define TMRA_GetCurrentTimer TMR3_GetCurrentTimer\n",
		"#define TMRA_PWMActDataWidth TMR3_PWMActDataWidth\n",
		"#define TMRA_PFIC_EnableIRQ() PFIC_EnableIRQ(TMR3_IRQn)",
		"#define TMRA_IRQHandler TMR3_IRQHandler",
		"#define TMRB_GPIO_MaybePinRemap()\n",
		"#define TMRB_DMACfg TMR1_DMACfg\n",
		"#define TMRC_DMACfg TMR2_DMACfg\n",
		"#define TMRD_GPIO_BANK B",
		"#define TMRD_GPIO_PIN 22",
	} {
		assert.Contains(t, out, line)
	}

	assert.NotContains(t, out, "TMRA_DMACfg", "TMR3 has no DMA")
	assert.NotContains(t, out, "TMRD_DMACfg", "TMR3 has no DMA")
	assert.True(t, strings.HasSuffix(out, "#endif // __CH5xx_TIMER_ALIAS_H__\n"))
}

func TestCHeaderForwardsEveryOp(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, "c", bindings(t, setting{2, false}, setting{2, false}), Options{}))
	out := buf.String()

	for _, op := range sdk.Ops {
		assert.Contains(t, out, "#define TMRA_"+op.Vendor+" TMR2_"+op.Vendor+"\n")
		assert.Contains(t, out, "#define TMRB_"+op.Vendor+" TMR2_"+op.Vendor+"\n")
	}
}

// forwards maps each generated function to the sdk functions it calls.
func forwards(t *testing.T, src []byte) (map[string][]string, *ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	require.NoError(t, err)

	out := map[string][]string{}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
				if x, ok := sel.X.(*ast.Ident); ok && x.Name == "sdk" {
					out[fn.Name.Name] = append(out[fn.Name.Name], sel.Sel.Name)
				}
			}
			return true
		})
		if _, ok := out[fn.Name.Name]; !ok {
			out[fn.Name.Name] = nil
		}
	}
	return out, f
}

func TestGoSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, "go", bindings(t, setting{3, true}, setting{1, false}, setting{1, false}), goOpts))
	src := buf.Bytes()

	fns, f := forwards(t, src)
	assert.Equal(t, "board", f.Name.Name)
	require.Len(t, f.Imports, 1)
	assert.Equal(t, `"example.com/ch5xx"`, f.Imports[0].Path.Value)
	assert.Contains(t, string(src), "// Code generated by tmralias from tmralias.yaml. DO NOT EDIT.")

	assert.Equal(t, []string{"GPIOPinRemap"}, fns["TMRA_GPIO_MaybePinRemap"])
	assert.Contains(t, fns, "TMRB_GPIO_MaybePinRemap")
	assert.Empty(t, fns["TMRB_GPIO_MaybePinRemap"])
	assert.Equal(t, []string{"GPIOA_ModeCfg"}, fns["TMRA_GPIO_ModeCfg"])
	assert.Equal(t, []string{"GPIOA_SetBits"}, fns["TMRA_GPIO_SetBit"])
	assert.Equal(t, []string{"GPIOA_ResetBits"}, fns["TMRA_GPIO_ResetBit"])
	assert.Equal(t, []string{"PFIC_EnableIRQ"}, fns["TMRA_PFIC_EnableIRQ"])
	assert.Equal(t, []string{"TMR3_IRQHandler"}, fns["TMRA_IRQHandler"])

	targets := map[string]int{"TMRA": 3, "TMRB": 1, "TMRC": 1, "TMRD": 3}
	for prefix, target := range targets {
		for _, op := range sdk.OpsFor(pinmap.HasDMA(model.Target(target))) {
			name := prefix + "_" + op.Vendor
			want := "TMR" + string(rune('0'+target)) + "_" + op.Vendor
			assert.Equal(t, []string{want}, fns[name], name)
		}
	}
	assert.NotContains(t, fns, "TMRA_DMACfg")
	assert.Contains(t, fns, "TMRB_DMACfg")
}

func TestGoSourceGuard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, "go", bindings(t), goOpts))
	src := buf.String()

	assert.Contains(t, src, "_ uint8 = 3 - TMRA_TARGET")
	assert.Contains(t, src, "_ uint8 = 3 - TMRD_TARGET")
	assert.Contains(t, src, "_ uint8 = TMRA_TARGET\n")
	assert.Contains(t, src, "_ uint8 = TMRD_TARGET\n")
	assert.Regexp(t, `TMRA_GPIO_BANK\s+= "A"`, src)
	assert.Regexp(t, `TMRD_GPIO_BANK\s+= "B"`, src)
	assert.Regexp(t, `TMRA_PIN_NAME\s+= "PA9"`, src)
	assert.Regexp(t, `TMRD_ALT_PIN\s+= false`, src)
}

func TestGoSourceNeedsPackage(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, "go", bindings(t), Options{})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
