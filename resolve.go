package pping

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// Resolve turns a literal IP address or a hostname into an *net.IPAddr.
// Literals (including zoned IPv6 ones) are used as is; hostnames resolve
// to the first returned address.
func Resolve(host string, timeout time.Duration) (*net.IPAddr, error) {
	if ip := net.ParseIP(host); ip != nil {
		return &net.IPAddr{IP: ip}, nil
	}
	if strings.ContainsRune(host, '%') {
		ipaddr, err := net.ResolveIPAddr("ip", host)
		if err != nil {
			return nil, err
		}
		return ipaddr, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) < 1 {
		return nil, fmt.Errorf("%s : no ip found", host)
	}
	return &addrs[0], nil
}
