package pping

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoReplies is returned by Run when every transmitted probe timed out.
var ErrNoReplies = errors.New("no responses have been received")

// newIdentifier draws a session identifier from the full u16 width.
func newIdentifier() uint16 {
	return uint16(rand.Uint32())
}

// Session drives a sequence of echo probes against one destination and
// folds the outcomes into running statistics. At most one probe is in
// flight at any time.
type Session struct {
	cfg      *Config
	exchange Exchanger
	reporter Reporter

	// id tags every probe of this session so replies can be told apart
	// from unrelated ICMP traffic.
	id uint16

	stats sessionStats
}

// NewSession opens the raw socket for the configured destination. Close
// must be called once the session is done.
func NewSession(cfg *Config) (*Session, error) {
	s := newSession(cfg)
	prober, err := NewProber(cfg.Addr, s.id, cfg.opts.payloadSize)
	if err != nil {
		return nil, err
	}
	s.exchange = prober
	return s, nil
}

func newSession(cfg *Config) *Session {
	return &Session{
		cfg:      cfg,
		reporter: NewLogReporter(cfg.Host, cfg.Addr),
		id:       newIdentifier(),
		stats:    newSessionStats(cfg.opts.statBufferSize),
	}
}

// SetReporter replaces the destination of per-probe and summary lines.
func (s *Session) SetReporter(r Reporter) {
	s.reporter = r
}

// Close releases the underlying socket, if any.
func (s *Session) Close() error {
	if c, ok := s.exchange.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Run sends probes until the configured count is reached or ctx is
// cancelled. Cancellation is observed between probes only: a probe
// already in flight finishes or times out first, then the loop exits.
// The summary is reported whenever at least one probe was attempted,
// cancelled and aborted sessions included.
func (s *Session) Run(ctx context.Context) (Report, error) {
	for s.running(ctx) && (s.cfg.Count == 0 || s.stats.sequence < s.cfg.Count) {
		cycleStart := time.Now()

		logrus.Debugf("probing %s seq=%d", s.cfg.Addr, s.stats.sequence)
		out, err := s.exchange.Exchange(s.stats.sequence, s.cfg.Timeout)
		if err != nil {
			r := s.stats.compute()
			if r.Transmitted > 0 {
				s.reporter.OnSummary(r)
				logReport(s.cfg.Host, r)
			}
			return r, err
		}

		seq := s.stats.sequence
		s.stats.record(out)
		if out.Replied {
			s.reporter.OnReply(seq, out.RTT)
		} else {
			s.reporter.OnTimeout(seq)
		}

		if wait := s.cfg.Interval - time.Since(cycleStart); wait > 0 {
			time.Sleep(wait)
		}
	}

	r := s.report()
	if r.Transmitted > 0 && r.Received == 0 {
		return r, ErrNoReplies
	}
	return r, nil
}

func (s *Session) running(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		logrus.Debug(ctx.Err())
		return false
	default:
		return true
	}
}

func (s *Session) report() Report {
	r := s.stats.compute()
	s.reporter.OnSummary(r)
	logReport(s.cfg.Host, r)
	return r
}
