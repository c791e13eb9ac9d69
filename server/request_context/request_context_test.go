// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package request_context

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRequestContext(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/work/trailhead", nil)
	r = r.WithContext(WithRequestContext(r.Context(), r))

	rc := FromRequest(r)
	assert.NotEmpty(t, rc.RequestID)
	assert.Equal(t, http.StatusOK, rc.StatusCode)
	assert.Equal(t, "/work/trailhead", rc.Path)

	rc.StatusCode = http.StatusNotFound
	assert.Equal(t, http.StatusNotFound, FromRequest(r).StatusCode, "the context holds a pointer")
}

func TestFromContextWithoutState(t *testing.T) {
	t.Parallel()

	rc := FromContext(context.Background())
	assert.NotNil(t, rc)
	assert.Empty(t, rc.RequestID)
}
