package pping

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func TestFamilyOf(t *testing.T) {
	assert.IsType(t, v4{}, familyOf(net.ParseIP("127.0.0.1")))
	assert.IsType(t, v4{}, familyOf(net.ParseIP("::ffff:192.0.2.1")))
	assert.IsType(t, v6{}, familyOf(net.ParseIP("::1")))
	assert.IsType(t, v6{}, familyOf(net.ParseIP("2001:db8::1")))
}

func TestEchoV4BuildRoundTrips(t *testing.T) {
	wire, err := v4{}.build(0xbeef, 42, make([]byte, 56))
	require.NoError(t, err)

	msg, err := icmp.ParseMessage(v4{}.protocol(), wire)
	require.NoError(t, err)
	assert.Equal(t, ipv4.ICMPTypeEcho, msg.Type)

	echo, ok := msg.Body.(*icmp.Echo)
	require.True(t, ok)
	assert.Equal(t, 0xbeef, echo.ID)
	assert.Equal(t, 42, echo.Seq)
	assert.Equal(t, 56, len(echo.Data))
}

func TestEchoV6BuildSetsType(t *testing.T) {
	wire, err := v6{}.build(0xbeef, 7, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, byte(128), wire[0])
	// checksum left for the kernel
	assert.Equal(t, []byte{0, 0}, wire[2:4])
}

func reply4(id, seq int) *icmp.Message {
	return &icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: make([]byte, 56)},
	}
}

func TestEchoV4Classify(t *testing.T) {
	const (
		id  = 0x1234
		seq = 10
	)

	assert.Equal(t, matchReply, v4{}.classify(id, seq, reply4(id, seq)))

	// replies to probes that already timed out are skipped, not matched
	assert.Equal(t, matchStale, v4{}.classify(id, seq, reply4(id, seq-3)))

	// a sequence nobody sent yet cannot legitimately come back
	assert.Equal(t, matchAhead, v4{}.classify(id, seq, reply4(id, seq+1)))

	// other sessions' traffic
	assert.Equal(t, matchNone, v4{}.classify(id, seq, reply4(id+1, seq)))

	// not an echo reply at all
	assert.Equal(t, matchNone, v4{}.classify(id, seq, &icmp.Message{
		Type: ipv4.ICMPTypeDestinationUnreachable,
		Body: &icmp.DstUnreach{},
	}))
}

// The v6 path deliberately mirrors the reference behaviour: any inbound
// echo reply is accepted, identifier and sequence are not checked. If this
// test starts failing the filter has been tightened and the change should
// be called out loudly in the changelog.
func TestEchoV6AcceptsAnyReply(t *testing.T) {
	const (
		id  = 0x1234
		seq = 10
	)
	other := &icmp.Message{
		Type: ipv6.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: id + 99, Seq: seq + 99},
	}
	assert.Equal(t, matchReply, v6{}.classify(id, seq, other))

	assert.Equal(t, matchNone, v6{}.classify(id, seq, &icmp.Message{
		Type: ipv6.ICMPTypeEchoRequest,
		Body: &icmp.Echo{ID: id, Seq: seq},
	}))
}
