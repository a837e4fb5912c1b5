package pping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLiteral(t *testing.T) {
	addr, err := Resolve("192.0.2.1", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", addr.IP.String())

	addr, err = Resolve("2001:db8::1", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", addr.IP.String())
}

func TestResolveHostname(t *testing.T) {
	addr, err := Resolve("localhost", time.Second)
	require.NoError(t, err)
	assert.True(t, addr.IP.IsLoopback())
}

func TestResolveUnknownHost(t *testing.T) {
	_, err := Resolve("some.wrong.address.invalid", time.Second)
	assert.Error(t, err)
}
