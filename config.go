package pping

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Unprivileged users may not flood; intervals below this floor are raised
// to it when the config is built.
const minUserInterval = 200 * time.Millisecond

const (
	// DefaultInterval is the pause between two probes.
	DefaultInterval = time.Second
	// DefaultTimeout is how long a probe waits for its reply.
	DefaultTimeout = 2 * time.Second
)

// geteuid is swapped out in tests to exercise the interval floor.
var geteuid = os.Geteuid

// Config carries the parameters of one ping session. Build it with
// NewConfig so validation and the interval floor are applied exactly once;
// nothing re-checks them per probe.
type Config struct {
	// Host is the destination as the user gave it, kept for reporting.
	Host string

	// Addr is the resolved destination. Its family decides whether ICMP
	// or ICMPv6 echo is used for the whole session.
	Addr *net.IPAddr

	// Count is the number of probes to send, 0 means until cancelled.
	Count uint16

	Interval time.Duration
	Timeout  time.Duration

	opts options
}

// NewConfig validates the probe parameters and resolves host. A negative
// interval or timeout is a configuration error, not something to clamp.
func NewConfig(host string, count uint16, interval, timeout time.Duration, opts ...Option) (*Config, error) {
	if host == "" {
		return nil, errors.New("destination must not be empty")
	}
	if interval < 0 {
		return nil, errors.New("the value of 'interval' cannot be negative")
	}
	if timeout < 0 {
		return nil, errors.New("the value of 'timeout' cannot be negative")
	}

	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.payloadSize < 0 {
		return nil, errors.New("the payload size cannot be negative")
	}

	if interval < minUserInterval && geteuid() != 0 && !o.unrestricted {
		logrus.Warn("cannot flood; minimal interval allowed for user is 200ms")
		logrus.Warn("interval will be set to 200ms")
		interval = minUserInterval
	}

	addr, err := Resolve(host, o.resolverTimeout)
	if err != nil {
		return nil, fmt.Errorf("error resolving host %s: %v", host, err)
	}

	return &Config{
		Host:     host,
		Addr:     addr,
		Count:    count,
		Interval: interval,
		Timeout:  timeout,
		opts:     o,
	}, nil
}
