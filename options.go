package pping

import "time"

type options struct {
	payloadSize     int
	statBufferSize  int
	resolverTimeout time.Duration
	unrestricted    bool
}

var defaultOptions = options{
	payloadSize:     56,
	statBufferSize:  10,
	resolverTimeout: time.Second,
}

// Option tweaks the session parameters beyond the basic ping knobs.
type Option func(*options)

// WithPayloadSize sets the echo payload size in bytes.
func WithPayloadSize(n int) Option {
	return func(o *options) {
		o.payloadSize = n
	}
}

// WithStatBufferSize sets how many recent probe results are kept for the
// report's Rtts window.
func WithStatBufferSize(n int) Option {
	return func(o *options) {
		o.statBufferSize = n
	}
}

// WithResolverTimeout bounds the destination DNS lookup.
func WithResolverTimeout(d time.Duration) Option {
	return func(o *options) {
		o.resolverTimeout = d
	}
}

// Unrestricted lifts the interval floor normally applied to unprivileged
// users. Sending still requires a raw socket, so this is only meaningful
// with CAP_NET_RAW but a non-zero uid.
func Unrestricted() Option {
	return func(o *options) {
		o.unrestricted = true
	}
}
