package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
	"go.jacobcolvin.com/logview/view/builtin"
)

func TestFactories(t *testing.T) {
	t.Parallel()

	lc := logger.New(logger.WithFactories(builtin.Factories(nil)))

	assert.Equal(t, []string{"console", "pageList", "pageTopics", "window"}, lc.Kinds())
}

func TestAllKindsTogether(t *testing.T) {
	t.Parallel()

	var (
		console bytes.Buffer
		windows []*page.Buffer
	)

	open := func() (page.Surface, error) {
		b := page.NewBuffer()
		windows = append(windows, b)

		return b, nil
	}

	lc := logger.New(logger.WithFactories(builtin.Factories(open)))
	t.Cleanup(func() { require.NoError(t, lc.Close()) })

	topics := page.NewBuffer()
	list := page.NewBuffer()

	for _, opts := range []logger.ViewerOptions{
		{Type: "console", Output: &console, LevelFilter: "error"},
		{Type: "pageTopics", Block: topics, TopicFilter: []string{"auth"}},
		{Type: "pageList", Block: list, LevelFilter: "debug"},
		{Type: "window", BlockViewer: "pageTopics", LevelFilter: "warn"},
	} {
		_, err := lc.AddView(opts)
		require.NoError(t, err)
	}

	lc.LogFull("trace me", "debug", "db")
	lc.LogWith("signed in", "auth.login")
	lc.LogFull("db down", "error", "db")

	assert.Contains(t, console.String(), "db: db down")
	assert.NotContains(t, console.String(), "signed in")

	assert.Contains(t, topics.Frame(), "signed in")
	assert.NotContains(t, topics.Frame(), "db down")

	for _, msg := range []string{"trace me", "signed in", "db down"} {
		assert.Contains(t, list.Frame(), msg)
	}

	require.Len(t, windows, 1)
	assert.Contains(t, windows[0].Frame(), "db down")
	assert.NotContains(t, windows[0].Frame(), "signed in")
}
