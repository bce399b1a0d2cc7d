package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
	"go.jacobcolvin.com/logview/view/pagelist"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  logger.Entry
	}{
		"plain text": {
			input: "server started",
			want:  logger.Entry{Msg: "server started", Level: "info", Topic: "cli"},
		},
		"json mapping": {
			input: `{"msg": "disk full", "level": "error", "topic": "storage"}`,
			want:  logger.Entry{Msg: "disk full", Level: "error", Topic: "storage"},
		},
		"yaml flow mapping without topic": {
			input: `{msg: retrying, level: warn}`,
			want:  logger.Entry{Msg: "retrying", Level: "warn"},
		},
		"mapping without msg": {
			input: "error: disk full",
			want:  logger.Entry{Msg: "error: disk full", Level: "info", Topic: "cli"},
		},
		"sequence": {
			input: "- one",
			want:  logger.Entry{Msg: "- one", Level: "info", Topic: "cli"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, parseLine(tc.input, "info", "cli"))
		})
	}
}

func TestPump(t *testing.T) {
	t.Parallel()

	buf := page.NewBuffer()
	lc := logger.New(logger.WithFactory(pagelist.Kind, pagelist.New))

	_, err := lc.AddView(logger.ViewerOptions{
		Type:        pagelist.Kind,
		Block:       buf,
		LevelFilter: "debug",
		Stylesheet:  &page.Stylesheet{},
	})
	require.NoError(t, err)

	input := strings.Join([]string{
		"plain",
		"",
		`{"msg": "structured", "level": "warn", "topic": "db"}`,
		"  ",
		`{msg: defaulted}`,
	}, "\n")

	require.NoError(t, pump(strings.NewReader(input), lc, "debug", ""))

	assert.Equal(t, strings.Join([]string{
		"level: [all] debug info warn error",
		"topic: [all] raw#1 db#2",
		"debug #1 plain",
		"warn #2 structured",
		"info #1 defaulted",
	}, "\n"), buf.Frame())
}

func TestPrintSchema(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, printSchema(&out))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "object", doc["type"])
	assert.True(t, strings.HasSuffix(out.String(), "}\n"))
}
