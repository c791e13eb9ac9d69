// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"errors"
	"net/http"
	"net/netip"

	"codeberg.org/portfolio/site/config"
)

var errMissingClientIP = errors.New("could not determine client IP")

// clientInfo is the limiter's view of one request.
type clientInfo struct {
	ip           netip.Addr
	network      netip.Prefix
	isSuspicious bool
	reason       string
	bucket       *bucket
}

func newClientInfo(r *http.Request) (*clientInfo, error) {
	ip, ok := getClientIP(r)
	if !ok {
		return nil, errMissingClientIP
	}

	return &clientInfo{
		ip:      ip,
		network: getNetwork(ip, config.Global.Limiter.IPv4Prefix, config.Global.Limiter.IPv6Prefix),
	}, nil
}

// checkIPLists reports whether the client is pass-listed or block-listed.
// The pass list wins when both match.
func (c *clientInfo) checkIPLists() (allowed, blocked bool) {
	if ipMatchesList(c.ip, config.Global.Limiter.PassIPs) {
		return true, false
	}

	return false, ipMatchesList(c.ip, config.Global.Limiter.BlockIPs)
}

// isLocal reports whether the client is on a loopback or link-local address.
func (c *clientInfo) isLocal() bool {
	return c.ip.IsLoopback() || c.ip.IsLinkLocalUnicast()
}

// assess flags the client as suspicious when its headers look automated.
func (c *clientInfo) assess(r *http.Request) {
	if !config.Global.Limiter.CheckHeaders {
		return
	}

	if reason := suspiciousHeaders(r); reason != "" {
		c.isSuspicious = true
		c.reason = reason
	}
}

// charge records the request against the network and takes a token.
func (c *clientInfo) charge() bool {
	c.bucket = getOrCreateBucket(c.network.String(), c.isSuspicious)
	c.bucket.observe(c.isSuspicious)

	return c.bucket.allow()
}
