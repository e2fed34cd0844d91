package table

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/signalexpr/types"
)

func TestColumns(t *testing.T) {
	data := []map[string]interface{}{
		{"value": 1.5, "key": 0, "reason": "x > y"},
		{"value": 2.0, "key": 1, "state": "true"},
	}
	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"alphabetical", nil, []string{"key", "reason", "state", "value"}},
		{"ordered", []string{"key", "value"}, []string{"key", "value", "reason", "state"}},
		{"unknown names skipped", []string{"bar", "state"}, []string{"state", "key", "reason", "value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Columns(data, tt.order))
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []map[string]interface{}{
		{"key": 0, "value": 1.5, "state": types.True},
		{"key": 1, "value": math.NaN(), "state": types.Unknown},
	}, []string{"key", "value", "state"})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Regexp(t, `^\|\s+key\s+\|\s+value\s+\|\s+state\s+\|$`, lines[1])
	assert.Regexp(t, `^\|\s+0\s+\|\s+1\.5\s+\|\s+true\s+\|$`, lines[3])
	assert.Regexp(t, `^\|\s+1\s+\|\s+NaN\s+\|\s+unknown\s+\|$`, lines[4])
	assert.Equal(t, "(2 rows)", lines[len(lines)-1])
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil, nil)
	assert.Equal(t, "(0 rows)\n", buf.String())

	assert.NotPanics(t, func() {
		PrintTableFromSlice([]map[string]interface{}{{"a": 1}}, nil)
	})
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", Cell(nil))
	assert.Equal(t, "0.1", Cell(0.1))
	assert.Equal(t, "1e+21", Cell(1e21))
	assert.Equal(t, "-Inf", Cell(math.Inf(-1)))
	assert.Equal(t, "false", Cell(types.False))
	assert.Equal(t, "7", Cell(int64(7)))
}
