package report

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"turbo/internal/options"
)

func TestSilentSuppressesStatus(t *testing.T) {
	var buf bytes.Buffer
	log := New(options.Default(), &buf)

	log.Info("parsing", zap.String("file", "main.tbs"))
	log.Warn("unused import")
	assert.Empty(t, buf.String())

	log.Error("emit failed", zap.Error(errors.New("out of memory")))
	out := buf.String()
	assert.Contains(t, out, "emit failed")
	assert.Contains(t, out, "out of memory")
}

func TestVerboseWritesStatus(t *testing.T) {
	opts, err := options.New(options.Default(), options.WithSilent(false))
	require.NoError(t, err)

	var buf bytes.Buffer
	log := New(opts, &buf)
	log.Info("parsing", zap.String("file", "main.tbs"))

	out := buf.String()
	assert.Contains(t, out, "parsing")
	assert.Contains(t, out, "main.tbs")
}

func TestLogErrorOffDropsDetail(t *testing.T) {
	opts, err := options.New(options.Default(), options.WithLogError(false))
	require.NoError(t, err)

	var buf bytes.Buffer
	log := New(opts, &buf)
	log.Error("emit failed", zap.Error(errors.New("out of memory")), zap.String("stage", "emit"))
	log.With(zap.Error(errors.New("bound detail"))).Error("second failure")

	out := buf.String()
	assert.Contains(t, out, "emit failed")
	assert.Contains(t, out, "stage")
	assert.Contains(t, out, "second failure")
	assert.NotContains(t, out, "out of memory")
	assert.NotContains(t, out, "bound detail")
}

func TestSharedSinkSerializesLoggers(t *testing.T) {
	opts, err := options.New(options.Default(), options.WithSilent(false))
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := Sink(&buf)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			New(opts, sink).Info("compiled", zap.Int("unit", i))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 32)
	for _, line := range lines {
		assert.Contains(t, line, "compiled")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored")
	assert.NotNil(t, log)
}
