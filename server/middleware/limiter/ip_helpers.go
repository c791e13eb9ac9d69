// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// getClientIP returns the client address of r.
//
// X-Real-IP and X-Forwarded-For are only trusted when the connection comes
// from a private or loopback address, i.e. a reverse proxy.
func getClientIP(r *http.Request) (netip.Addr, bool) {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	remote, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}

	remote = remote.Unmap()

	if !remote.IsPrivate() && !remote.IsLoopback() {
		return remote, true
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		if addr, err := netip.ParseAddr(realIP); err == nil {
			return addr.Unmap(), true
		}
	}

	// The last hop is the one our proxy appended.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(hops[len(hops)-1])); err == nil {
			return addr.Unmap(), true
		}
	}

	return remote, true
}

// ipMatchesList reports whether ip equals, or falls inside, any entry of list.
// Entries are addresses or CIDR prefixes; malformed entries never match.
func ipMatchesList(ip netip.Addr, list []string) bool {
	for _, entry := range list {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			if prefix.Contains(ip) {
				return true
			}

			continue
		}

		if addr, err := netip.ParseAddr(entry); err == nil && addr.Unmap() == ip {
			return true
		}
	}

	return false
}

// getNetwork masks ip to the configured prefix length for its family.
func getNetwork(ip netip.Addr, ipv4Prefix, ipv6Prefix int) netip.Prefix {
	bits := ipv6Prefix
	if ip.Is4() {
		bits = ipv4Prefix
	}

	prefix, err := ip.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(ip, ip.BitLen())
	}

	return prefix
}
