package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bars = `
timestamps: ["2024-01-02T00:00:00Z", "2024-01-03T00:00:00Z", "2024-01-04T00:00:00Z", "2024-01-05T00:00:00Z"]
series:
  fast: [5, 10, 12, 8]
  slow: [10, 5, 9, 9]
  volume: [1200, 900, ~, 1500]
integer: [volume]
`

func writeSeries(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bars), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "signalexpr", cmd.Use)
	for _, name := range []string{"simplify", "eval"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
	flag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Equal(t, "info", flag.DefValue)
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"fold", []string{"simplify", "2 + 3 * 4"}, "14"},
		{"reassociate", []string{"simplify", "x + 2 + 3"}, "5 + x"},
		{"integer narrowing", []string{"simplify", "--integer", "xi", "(xi + 1) * 2"}, "2 * (1 + xi)"},
		{"short-circuit", []string{"simplify", "--boolean", "b", "true and b"}, "b"},
		{"null stays", []string{"simplify", "--boolean", "b", "xor(null, b)"}, "null xor b"},
		{"crossing", []string{"simplify", "crossesAbove(x + 0, y)"}, "0 + x crosses above y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestSimplifyWithSeries(t *testing.T) {
	out, err := run(t, "simplify", "--series", writeSeries(t), "volume + 1 + 2 > 1000")
	require.NoError(t, err)
	assert.Equal(t, "3 + volume > 1000\n", out)
}

func TestEval(t *testing.T) {
	path := writeSeries(t)

	out, err := run(t, "eval", "--series", path, "fast > slow")
	require.NoError(t, err)
	assert.Contains(t, out, "fast > slow [10 > 5]")
	assert.Contains(t, out, "fast > slow [5 > 10]")
	assert.Contains(t, out, "(4 rows)")

	out, err = run(t, "eval", "--series", path, "--keying", "time", "crossesAbove(fast, slow)")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-03T00:00:00Z")
	assert.Contains(t, out, "fast crosses above slow is true")

	out, err = run(t, "eval", "-s", path, "volume > 1000")
	require.NoError(t, err)
	assert.Contains(t, out, "volume > 1000 [1200 > 1000]")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "(4 rows)")

	out, err = run(t, "eval", "-s", path, "crossesAbove(fast, 9)")
	require.NoError(t, err)
	assert.Contains(t, out, "fast crosses above 9 is true")

	out, err = run(t, "eval", "-s", path, "--raw", "1 + 1 > 1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 + 1 > 1 [2 > 1]")
	assert.Equal(t, 4, strings.Count(out, "[2 > 1]"))
}

func TestEvalErrors(t *testing.T) {
	path := writeSeries(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing series flag", []string{"eval", "fast > 1"}, "series"},
		{"bad keying", []string{"eval", "-s", path, "--keying", "weekly", "fast > 1"}, "unknown key kind"},
		{"unknown name", []string{"eval", "-s", path, "close > 1"}, "unknown identifier close"},
		{"unkeyed crossing", []string{"eval", "-s", path, "--keying", "none", "crossesAbove(fast, slow)"}, "unsupported operation"},
		{"missing file", []string{"eval", "-s", filepath.Join(t.TempDir(), "none.yaml"), "fast > 1"}, "none.yaml"},
		{"bad log level", []string{"--log-level", "loud", "simplify", "1"}, "unknown log level"},
		{"parse error", []string{"simplify", "1 +"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
