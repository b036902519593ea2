package sdk

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpsMatchTimerInterface(t *testing.T) {
	timer := reflect.TypeOf((*Timer)(nil)).Elem()
	for _, op := range Ops {
		m, ok := timer.MethodByName(op.Method)
		if !assert.True(t, ok, "Timer has no method %s", op.Method) {
			continue
		}
		assert.Equal(t, len(op.Params), m.Type.NumIn(), "params of %s", op.Method)
	}
	// Every Timer method but SetIRQHandler is listed as an op.
	assert.Equal(t, timer.NumMethod()-1, len(Ops))
}

func TestOpsFor(t *testing.T) {
	withDMA := OpsFor(true)
	withoutDMA := OpsFor(false)
	assert.Len(t, withDMA, len(Ops))
	assert.Len(t, withoutDMA, len(Ops)-1)
	for _, op := range withoutDMA {
		assert.NotEqual(t, "DMACfg", op.Vendor)
	}
}
