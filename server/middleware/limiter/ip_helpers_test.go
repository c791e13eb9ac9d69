// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
		ok         bool
	}{
		{
			name:       "direct client",
			remoteAddr: "203.0.113.5:40000",
			want:       "203.0.113.5",
			ok:         true,
		},
		{
			name:       "public peer cannot spoof X-Real-IP",
			remoteAddr: "203.0.113.5:40000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "203.0.113.5",
			ok:         true,
		},
		{
			name:       "proxy X-Real-IP",
			remoteAddr: "127.0.0.1:50000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
			ok:         true,
		},
		{
			name:       "proxy X-Forwarded-For uses the last hop",
			remoteAddr: "10.0.0.2:50000",
			headers:    map[string]string{"X-Forwarded-For": "192.0.2.1, 198.51.100.7"},
			want:       "198.51.100.7",
			ok:         true,
		},
		{
			name:       "proxy without forwarding headers",
			remoteAddr: "10.0.0.2:50000",
			want:       "10.0.0.2",
			ok:         true,
		},
		{
			name:       "IPv4-mapped IPv6",
			remoteAddr: "[::ffff:203.0.113.5]:40000",
			want:       "203.0.113.5",
			ok:         true,
		},
		{
			name:       "unparseable remote address",
			remoteAddr: "@",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr

			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			ip, ok := getClientIP(r)
			require.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, ip.String())
			}
		})
	}
}

func TestIPMatchesList(t *testing.T) {
	t.Parallel()

	list := []string{"198.51.100.7", "203.0.113.0/24", "2001:db8::/32", "not an ip"}

	tests := []struct {
		ip   string
		want bool
	}{
		{"198.51.100.7", true},
		{"198.51.100.8", false},
		{"203.0.113.200", true},
		{"2001:db8:1::1", true},
		{"2001:db9::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ipMatchesList(netip.MustParseAddr(tt.ip), list))
		})
	}

	assert.False(t, ipMatchesList(netip.MustParseAddr("198.51.100.7"), nil))
}

func TestGetNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ip   string
		want string
	}{
		{"203.0.113.77", "203.0.113.0/24"},
		{"2001:db8:aaaa:bbbb::1", "2001:db8:aaaa::/48"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, getNetwork(netip.MustParseAddr(tt.ip), 24, 48).String())
	}

	assert.Equal(t, "203.0.113.77/32", getNetwork(netip.MustParseAddr("203.0.113.77"), 99, 48).String(),
		"an invalid prefix length keeps the whole address")
}
