package window

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logview/page"
)

func TestModelFrames(t *testing.T) {
	t.Parallel()

	feed := page.NewFeed()
	m := newModel("logs", feed.Subscribe())

	require.NoError(t, feed.Draw("one\ntwo"))

	msg := m.Init()()
	assert.Equal(t, frameMsg("one\ntwo"), msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd, "model keeps listening after a frame")
	assert.Equal(t, "logs\none\ntwo", m.render())

	require.NoError(t, feed.Close())
	assert.Equal(t, feedClosedMsg{}, cmd())
}

func TestModelKeepsTrailingLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		title  string
		height int
		want   string
	}{
		"no size yet": {
			height: 0,
			want:   "a\nb\nc\nd",
		},
		"fits": {
			height: 10,
			want:   "a\nb\nc\nd",
		},
		"trimmed": {
			height: 2,
			want:   "c\nd",
		},
		"trimmed with title": {
			title:  "logs",
			height: 3,
			want:   "logs\nc\nd",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newModel(tc.title, page.NewFeed().Subscribe())
			m.Update(frameMsg("a\nb\nc\nd"))
			m.Update(tea.WindowSizeMsg{Width: 80, Height: tc.height})

			assert.Equal(t, tc.want, m.render())
		})
	}
}

func TestModelQuitsWhenFeedCloses(t *testing.T) {
	t.Parallel()

	m := newModel("", page.NewFeed().Subscribe())

	_, cmd := m.Update(feedClosedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTerminalRequiresTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, f.Close()) })

	_, err = Terminal{In: f, Out: f}.Open()
	require.ErrorIs(t, err, ErrNoTerminal)
}

func TestSurfaceCloseReleasesOwnedFiles(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		owned bool
	}{
		"owned files are closed":   {owned: true},
		"borrowed files stay open": {owned: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := os.Create(filepath.Join(t.TempDir(), "tty"))
			require.NoError(t, err)

			t.Cleanup(func() { f.Close() }) //nolint:errcheck // May already be closed.

			done := make(chan struct{})
			quits := 0

			s := &terminalSurface{
				feed: page.NewFeed(),
				quit: func() {
					quits++
					close(done)
				},
				done: done,
			}

			if tc.owned {
				s.files = []*os.File{f}
			}

			require.NoError(t, s.Close())
			require.NoError(t, s.Close())
			assert.Equal(t, 1, quits)

			_, err = f.WriteString("x")
			if tc.owned {
				require.ErrorIs(t, err, os.ErrClosed)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSurfaceCloseReportsRunError(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	s := &terminalSurface{
		feed:   page.NewFeed(),
		quit:   func() { close(done) },
		done:   done,
		runErr: errors.New("program crashed"),
	}

	require.ErrorContains(t, s.Close(), "program crashed")
}
