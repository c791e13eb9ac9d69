// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits page requests per client network.

Clients are grouped into networks by address prefix. Each network shares a
token bucket whose rate drops when most recent clients from that network looked
automated, and recovers once they stop.
*/
package limiter
