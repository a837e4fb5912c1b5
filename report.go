package pping

import (
	"net"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Reporter receives every probe outcome as it happens plus the final
// summary. Implementations must not block for long; the run loop calls
// them inline.
type Reporter interface {
	OnReply(seq uint16, rtt time.Duration)
	OnTimeout(seq uint16)
	OnSummary(r Report)
}

// summary lines are bold grey, like classic ping statistics blocks.
var summaryColor = color.New(color.FgHiBlack, color.Bold)

type logReporter struct {
	host string
	addr *net.IPAddr
}

// NewLogReporter renders probe outcomes through logrus, with the RTT
// colored by latency.
func NewLogReporter(host string, addr *net.IPAddr) Reporter {
	return &logReporter{host: host, addr: addr}
}

func (l *logReporter) OnReply(seq uint16, rtt time.Duration) {
	logrus.Infof("answer from %s seq=%d rtt=%sms", l.addr, seq, PaintRTT(rtt))
}

func (l *logReporter) OnTimeout(seq uint16) {
	logrus.Warnf("no answer from %s seq=%d", l.addr, seq)
}

func (l *logReporter) OnSummary(r Report) {
	logrus.Info(summaryColor.Sprintf("%s ping statistics", l.host))
	logrus.Info(summaryColor.Sprintf("transmitted=%d received=%d loss=%.4f%%", r.Transmitted, r.Received, r.Loss))
	logrus.Infof("%s%s%s%s%s%s%s",
		summaryColor.Sprint("min="), PaintRTT(r.MinRtt),
		summaryColor.Sprint("ms max="), PaintRTT(r.MaxRtt),
		summaryColor.Sprint("ms avg="), PaintRTT(r.AvgRtt),
		summaryColor.Sprint("ms"),
	)
}
