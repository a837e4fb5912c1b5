package pping

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Raw sockets need CAP_NET_RAW; skip instead of failing on plain CI
// runners.
func newLoopbackProber(t *testing.T) *Prober {
	t.Helper()
	p, err := NewProber(&net.IPAddr{IP: net.ParseIP("127.0.0.1")}, 0x4242, 56)
	if err != nil {
		var terr *TransportError
		if errors.As(err, &terr) {
			t.Skipf("raw sockets unavailable: %v", err)
		}
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProberLoopback(t *testing.T) {
	p := newLoopbackProber(t)

	out, err := p.Exchange(0, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, out.Replied)
	assert.Greater(t, out.RTT, time.Duration(0))
}

func TestProberTimeout(t *testing.T) {
	p, err := NewProber(&net.IPAddr{IP: net.ParseIP("255.0.0.255")}, 0x4242, 56)
	if err != nil {
		t.Skipf("raw sockets unavailable: %v", err)
	}
	defer p.Close()

	start := time.Now()
	out, err := p.Exchange(0, 250*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, out.Replied)
	// the deadline bounds the wait, unrelated traffic cannot stretch it
	assert.Less(t, time.Since(start), time.Second)
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := errors.New("operation not permitted")
	err := &TransportError{Op: "listen", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "listen")
}
