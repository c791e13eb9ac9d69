// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware holds the request pipeline that wraps every route.

Middlewares share the Middleware signature and are chained with Wrap by the
router. Handlers that can fail are adapted to http.HandlerFunc by CatchError,
which also logs the request.
*/
package middleware
