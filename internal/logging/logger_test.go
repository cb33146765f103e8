package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "info", FormatJSON)
	lg.Info().Str("model", "m").Msg("hello")
	lg.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "m", entry["model"])
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	gl := GormLogger{Base: New(&buf, "debug", FormatJSON)}

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products", 3
	}, nil)
	assert.Contains(t, buf.String(), `"sql":"SELECT * FROM products"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 0
	}, errors.New("timeout"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "timeout")
}

func TestTruncateSQL(t *testing.T) {
	short := "SELECT 1"
	assert.Equal(t, short, truncateSQL(short))

	long := strings.Repeat("x", 500)
	got := truncateSQL(long)
	assert.Len(t, got, maxSQLLength-1)
	assert.Contains(t, got, "...")
}
