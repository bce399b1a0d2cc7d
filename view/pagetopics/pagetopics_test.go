package pagetopics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
	"go.jacobcolvin.com/logview/view/pagetopics"
)

func newViewer(t *testing.T) (*pagetopics.Viewer, *page.Buffer) {
	t.Helper()

	buf := page.NewBuffer()

	v, err := pagetopics.New(logger.ViewerOptions{
		Block:      buf,
		Stylesheet: &page.Stylesheet{},
	}, logger.Env{})
	require.NoError(t, err)

	pv, ok := v.(*pagetopics.Viewer)
	require.True(t, ok)

	return pv, buf
}

func TestMissingBlock(t *testing.T) {
	t.Parallel()

	_, err := pagetopics.New(logger.ViewerOptions{}, logger.Env{})
	require.ErrorIs(t, err, logger.ErrMissingRenderSurface)
}

func TestGroupsByTopic(t *testing.T) {
	t.Parallel()

	v, buf := newViewer(t)

	v.Output("first", "info", "auth")
	v.Output("second", "warn", "db")
	v.Output("third", "error", "auth")

	assert.Equal(t, []string{"auth", "db"}, v.Topics())
	assert.Equal(t, strings.Join([]string{
		"▾ auth",
		"  first",
		"  third",
		"▾ db",
		"  second",
	}, "\n"), buf.Frame())
	assert.Equal(t, 3, buf.Draws())
}

func TestToggle(t *testing.T) {
	t.Parallel()

	v, buf := newViewer(t)

	v.Output("first", "info", "auth")
	v.Output("second", "info", "db")

	assert.True(t, v.Toggle("auth"))
	assert.Equal(t, "▸ auth (1)\n▾ db\n  second", buf.Frame())

	v.Output("hidden", "info", "auth")
	assert.NotContains(t, buf.Frame(), "hidden")

	assert.False(t, v.Toggle("auth"))
	assert.Contains(t, buf.Frame(), "hidden")

	assert.False(t, v.Toggle("unknown"))
}

func TestThroughContext(t *testing.T) {
	t.Parallel()

	buf := page.NewBuffer()
	lc := logger.New(logger.WithFactory(pagetopics.Kind, pagetopics.New))

	_, err := lc.AddView(logger.ViewerOptions{Type: pagetopics.Kind})
	require.ErrorIs(t, err, logger.ErrMissingRenderSurface)

	_, err = lc.AddView(logger.ViewerOptions{
		Type:        pagetopics.Kind,
		Block:       buf,
		Stylesheet:  &page.Stylesheet{},
		TopicFilter: []string{"auth"},
	})
	require.NoError(t, err)

	lc.LogWith("login", "auth.login")
	lc.LogWith("query", "db")

	assert.Equal(t, "▾ auth.login\n  login", buf.Frame())
}
