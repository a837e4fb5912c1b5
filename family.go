package pping

import (
	"net"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// match classifies an inbound message against the probe being awaited.
type match int

const (
	// matchNone is anything that is not this session's echo reply.
	matchNone match = iota
	// matchReply is the awaited reply.
	matchReply
	// matchStale is a reply to an earlier probe that already timed out.
	matchStale
	// matchAhead is a reply whose sequence has not been sent yet. With a
	// single probe in flight it cannot legitimately occur.
	matchAhead
)

// family folds the ICMP vs ICMPv6 differences into one dispatch point:
// building a request, the listen network, the parse protocol and reply
// classification.
type family interface {
	network() string
	protocol() int
	build(id, seq uint16, payload []byte) ([]byte, error)
	classify(id, seq uint16, msg *icmp.Message) match
}

func familyOf(ip net.IP) family {
	if ip.To4() != nil {
		return v4{}
	}
	return v6{}
}

type v4 struct{}

func (v4) network() string { return "ip4:icmp" }
func (v4) protocol() int   { return ipv4.ICMPTypeEchoReply.Protocol() }

func (v4) build(id, seq uint16, payload []byte) ([]byte, error) {
	m := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Body: &icmp.Echo{ID: int(id), Seq: int(seq), Data: payload},
	}
	// Marshal fills in the internet checksum over header and payload.
	return m.Marshal(nil)
}

func (v4) classify(id, seq uint16, msg *icmp.Message) match {
	if msg.Type != ipv4.ICMPTypeEchoReply {
		return matchNone
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok || uint16(echo.ID) != id {
		return matchNone
	}
	switch {
	case uint16(echo.Seq) == seq:
		return matchReply
	case uint16(echo.Seq) > seq:
		return matchAhead
	default:
		return matchStale
	}
}

type v6 struct{}

func (v6) network() string { return "ip6:ipv6-icmp" }
func (v6) protocol() int   { return ipv6.ICMPTypeEchoReply.Protocol() }

func (v6) build(id, seq uint16, payload []byte) ([]byte, error) {
	m := icmp.Message{
		Type: ipv6.ICMPTypeEchoRequest,
		Body: &icmp.Echo{ID: int(id), Seq: int(seq), Data: payload},
	}
	// The ICMPv6 checksum needs the pseudo header; the kernel computes it
	// on raw ipv6-icmp sockets, so the marshalled checksum stays zero.
	return m.Marshal(nil)
}

// classify accepts any echo reply without looking at identifier or
// sequence. TestEchoV6AcceptsAnyReply pins this behaviour; revisit the
// test before tightening the filter to the v4 rules.
func (v6) classify(id, seq uint16, msg *icmp.Message) match {
	if msg.Type != ipv6.ICMPTypeEchoReply {
		return matchNone
	}
	return matchReply
}
