package pping

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// sessionStats accumulates completed probe outcomes. It is owned
// exclusively by the run loop; the prober never touches it.
type sessionStats struct {
	transmitted int
	received    int
	totalRTT    time.Duration

	minRTT time.Duration
	maxRTT time.Duration
	rttSet bool

	// sequence is the next sequence number to send. It wraps with the
	// protocol field width.
	sequence uint16

	// recent is a window of the last probe results, newest first.
	// 0 means timeout.
	recent []time.Duration
}

func newSessionStats(window int) sessionStats {
	return sessionStats{recent: make([]time.Duration, window)}
}

// record folds one completed probe into the counters and advances the
// sequence. min/max only move on a reply; a timeout still counts as
// transmitted.
func (s *sessionStats) record(out Outcome) {
	if out.Replied {
		if !s.rttSet || out.RTT < s.minRTT {
			s.minRTT = out.RTT
		}
		if !s.rttSet || out.RTT > s.maxRTT {
			s.maxRTT = out.RTT
		}
		s.rttSet = true
		s.totalRTT += out.RTT
		s.received++
	}
	s.transmitted++
	s.sequence++
	s.push(out.RTT)
}

func (s *sessionStats) push(rtt time.Duration) {
	switch len(s.recent) {
	case 0:
	case 1:
		s.recent[0] = rtt
	default:
		copy(s.recent[1:], s.recent[:len(s.recent)-1])
		s.recent[0] = rtt
	}
}

// Report is the aggregate view of a session.
type Report struct {
	// Transmitted is the number of probes sent.
	Transmitted int

	// Received is the number of probes answered in time.
	Received int

	// Loss is the percentage of probes that got no reply. It is 100 when
	// nothing was transmitted at all.
	Loss float64

	// MinRtt is the best round-trip time, zero when no reply was ever
	// received.
	MinRtt time.Duration

	// MaxRtt is the worst round-trip time, zero when no reply was ever
	// received.
	MaxRtt time.Duration

	// AvgRtt is the total round-trip time divided by the number of probes
	// sent, truncated to microseconds.
	AvgRtt time.Duration

	// StdDevRtt is the standard deviation over the Rtts window.
	StdDevRtt time.Duration

	// Rtts holds the most recent probe results, newest first.
	// 0 means timeout.
	Rtts []time.Duration
}

func (s *sessionStats) compute() (r Report) {
	r.Transmitted = s.transmitted
	r.Received = s.received

	if s.transmitted == 0 {
		r.Loss = 100
	} else {
		r.Loss = float64(s.transmitted-s.received) / float64(s.transmitted) * 100
	}

	if s.rttSet {
		r.MinRtt, r.MaxRtt = s.minRTT, s.maxRTT
	}
	if s.sequence > 0 {
		r.AvgRtt = time.Duration(s.totalRTT.Microseconds()/int64(s.sequence)) * time.Microsecond
	}

	r.Rtts = make([]time.Duration, len(s.recent))
	copy(r.Rtts, s.recent)

	count := 0
	for _, rtt := range r.Rtts {
		if rtt != 0 {
			count++
		}
	}
	if count > 0 {
		mean := time.Duration(0)
		for _, rtt := range r.Rtts {
			if rtt != 0 {
				mean += rtt
			}
		}
		mean = time.Duration(float64(mean) / float64(count))

		stddevNum := float64(0)
		for _, rtt := range r.Rtts {
			if rtt == 0 {
				continue
			}
			stddevNum += math.Pow(float64(rtt-mean), 2)
		}
		r.StdDevRtt = time.Duration(math.Sqrt(stddevNum / float64(count)))
	}
	return
}

func logReport(host string, r Report) {
	logrus.WithFields(logrus.Fields{
		"host":        host,
		"transmitted": r.Transmitted,
		"received":    r.Received,
		"loss":        r.Loss,
		"min":         r.MinRtt,
		"max":         r.MaxRtt,
		"mean":        r.AvgRtt,
		"stddev":      r.StdDevRtt,
		"rtts":        r.Rtts,
	}).Debug()
}
