// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envSample struct {
	Name    string        `env:"SAMPLE_NAME"`
	Count   int           `env:"SAMPLE_COUNT,overwrite"`
	Ratio   float64       `env:"SAMPLE_RATIO,overwrite"`
	Enabled bool          `env:"SAMPLE_ENABLED,overwrite"`
	Tags    []string      `env:"SAMPLE_TAGS,overwrite"`
	Wait    time.Duration `env:"SAMPLE_WAIT,overwrite"`
	Nested  struct {
		Value string `env:"SAMPLE_NESTED,overwrite"`
	}
}

func TestReadEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	t.Setenv("SAMPLE_COUNT", "7")
	t.Setenv("SAMPLE_RATIO", "0.25")
	t.Setenv("SAMPLE_ENABLED", "true")
	t.Setenv("SAMPLE_TAGS", "a, b,,c ")
	t.Setenv("SAMPLE_WAIT", "1m30s")
	t.Setenv("SAMPLE_NESTED", "deep")

	s := envSample{Name: "preset", Count: 1}
	require.NoError(t, readEnv(&s))

	assert.Equal(t, "preset", s.Name, "fields without overwrite keep their value")
	assert.Equal(t, 7, s.Count)
	assert.InDelta(t, 0.25, s.Ratio, 0)
	assert.True(t, s.Enabled)
	assert.Equal(t, []string{"a", "b", "c"}, s.Tags)
	assert.Equal(t, 90*time.Second, s.Wait)
	assert.Equal(t, "deep", s.Nested.Value)

	empty := envSample{}
	require.NoError(t, readEnv(&empty))
	assert.Equal(t, "from-env", empty.Name)
}

func TestReadEnvErrors(t *testing.T) {
	t.Setenv("SAMPLE_COUNT", "seven")

	err := readEnv(&envSample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAMPLE_COUNT")

	require.ErrorIs(t, readEnv(envSample{}), errExpectedPointerToStruct)

	n := 3
	require.ErrorIs(t, readEnv(&n), errExpectedPointerToStruct)
}

func TestTryLoadDotEnv(t *testing.T) {
	unsetEnv(t, "DOTENV_PLAIN")
	unsetEnv(t, "DOTENV_QUOTED")
	t.Setenv("DOTENV_PRESET", "kept")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
DOTENV_PLAIN=value
DOTENV_QUOTED="quoted value"
DOTENV_PRESET=replaced
not a pair
`), 0o600))

	loaded, err := tryLoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "value", os.Getenv("DOTENV_PLAIN"))
	assert.Equal(t, "quoted value", os.Getenv("DOTENV_QUOTED"))
	assert.Equal(t, "kept", os.Getenv("DOTENV_PRESET"))

	loaded, err = tryLoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", unquote(`"a b"`))
	assert.Equal(t, "a b", unquote(`'a b'`))
	assert.Equal(t, "", unquote(`""`))
	assert.Equal(t, `"mismatched'`, unquote(`"mismatched'`))
	assert.Equal(t, `"`, unquote(`"`))
}
