package pping

import (
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/icmp"
)

const maxPacketSize = 1500

// ErrSequenceAhead reports a reply carrying a sequence number that has not
// been sent yet. It points at an internal bug (or a duplicate sender on
// the same identifier), not at the network, and aborts the session.
var ErrSequenceAhead = errors.New("reply sequence ahead of last probe sent")

// TransportError wraps a failure of the raw ICMP channel itself. Unlike a
// timeout it means the session cannot make progress at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("icmp %s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// Outcome is the result of one completed echo exchange.
type Outcome struct {
	RTT time.Duration

	// Replied is false when the probe timed out. A timeout is a valid
	// outcome, not an error.
	Replied bool
}

// Exchanger performs a single echo round trip. It exists so the run loop
// can be driven by a simulated transport in tests.
type Exchanger interface {
	Exchange(seq uint16, timeout time.Duration) (Outcome, error)
}

// Prober sends echo requests over a raw ICMP or ICMPv6 socket and waits
// for the matching reply. The socket is opened once and reused for every
// probe of the session.
type Prober struct {
	remote *net.IPAddr
	fam    family
	conn   *icmp.PacketConn
	id     uint16
	buf    []byte

	payloadSize int
}

// NewProber opens the raw socket for the family of remote. The identifier
// separates this session's replies from other ICMP traffic on the host.
func NewProber(remote *net.IPAddr, id uint16, payloadSize int) (*Prober, error) {
	fam := familyOf(remote.IP)
	conn, err := icmp.ListenPacket(fam.network(), "")
	if err != nil {
		return nil, &TransportError{Op: "listen", Err: err}
	}
	return &Prober{
		remote:      remote,
		fam:         fam,
		conn:        conn,
		id:          id,
		buf:         make([]byte, maxPacketSize),
		payloadSize: payloadSize,
	}, nil
}

// Close releases the socket.
func (p *Prober) Close() error { return p.conn.Close() }

// Exchange transmits one echo request and waits up to timeout for its
// reply. Unrelated inbound traffic is skipped without stretching the
// timeout budget: the deadline is fixed once and every read waits only
// for what is left of it.
func (p *Prober) Exchange(seq uint16, timeout time.Duration) (Outcome, error) {
	wire, err := p.fam.build(p.id, seq, make([]byte, p.payloadSize))
	if err != nil {
		return Outcome{}, &TransportError{Op: "build", Err: err}
	}
	if _, err := p.conn.WriteTo(wire, p.remote); err != nil {
		return Outcome{}, &TransportError{Op: "send", Err: err}
	}

	sent := time.Now()
	deadline := sent.Add(timeout)
	for {
		if !time.Now().Before(deadline) {
			return Outcome{}, nil
		}
		if err := p.conn.SetReadDeadline(deadline); err != nil {
			return Outcome{}, &TransportError{Op: "deadline", Err: err}
		}
		n, _, err := p.conn.ReadFrom(p.buf)
		if err != nil {
			var neterr net.Error
			if errors.As(err, &neterr) && neterr.Timeout() {
				return Outcome{}, nil
			}
			return Outcome{}, &TransportError{Op: "receive", Err: err}
		}
		now := time.Now()

		msg, err := icmp.ParseMessage(p.fam.protocol(), p.buf[:n])
		if err != nil {
			// not even ICMP, keep waiting
			continue
		}
		switch p.fam.classify(p.id, seq, msg) {
		case matchReply:
			return Outcome{RTT: now.Sub(sent), Replied: true}, nil
		case matchAhead:
			return Outcome{}, fmt.Errorf("probe seq=%d: %w", seq, ErrSequenceAhead)
		default:
			// stale or foreign traffic, wait on what is left
		}
	}
}
