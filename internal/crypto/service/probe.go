package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// ProbeFunc adapts a plain function to the Probe interface, letting tests and
// callers force a capability result.
type ProbeFunc func() bool

// Available implements Probe.
func (f ProbeFunc) Available() bool {
	return f()
}

// PlatformProbe checks the real platform capability on every call.
//
// The check is side-effect-free: it draws a few random bytes and constructs
// an AES-GCM AEAD over a throwaway key. Results are intentionally not cached;
// the capability can in principle change across calls in some embedding
// contexts, so each caller gets a fresh answer.
type PlatformProbe struct{}

// NewPlatformProbe creates a new PlatformProbe.
func NewPlatformProbe() *PlatformProbe {
	return &PlatformProbe{}
}

// Available reports whether secure random generation and authenticated
// encryption both work on this platform.
func (p *PlatformProbe) Available() bool {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return false
	}

	key := make([]byte, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return false
	}
	if _, err := cipher.NewGCM(block); err != nil {
		return false
	}
	return true
}
