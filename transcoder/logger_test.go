package transcoder

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Default(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	l := Logger()
	assert.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestLogger_SetAndRestore(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Info("hello")
	assert.Equal(t, 1, logs.FilterMessage("hello").Len())

	SetLogger(nil)
	Logger().Info("dropped")
	assert.Equal(t, 0, logs.FilterMessage("dropped").Len())
}

func TestLogger_ConcurrentSet(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	l := zap.New(core)
	t.Cleanup(func() { SetLogger(nil) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(l)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Logger())
		}()
	}
	wg.Wait()
	assert.Same(t, l, Logger())
}
