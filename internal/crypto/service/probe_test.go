package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformProbe_Available(t *testing.T) {
	probe := NewPlatformProbe()

	// The Go runtime always provides crypto/rand and AES-GCM
	assert.True(t, probe.Available())

	// Re-evaluated per call, same answer on a stable platform
	assert.True(t, probe.Available())
}

func TestProbeFunc(t *testing.T) {
	calls := 0
	probe := ProbeFunc(func() bool {
		calls++
		return false
	})

	assert.False(t, probe.Available())
	assert.False(t, probe.Available())
	assert.Equal(t, 2, calls, "probe must be re-evaluated on every call")
}
