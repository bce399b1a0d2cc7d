package page_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logview/page"
)

func TestNewFeed(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []page.FeedOption
		wantCap int
	}{
		"default size": {
			opts:    nil,
			wantCap: 8,
		},
		"custom size": {
			opts:    []page.FeedOption{page.WithFeedSize(32)},
			wantCap: 32,
		},
		"clamp zero to one": {
			opts:    []page.FeedOption{page.WithFeedSize(0)},
			wantCap: 1,
		},
		"clamp negative to one": {
			opts:    []page.FeedOption{page.WithFeedSize(-3)},
			wantCap: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			feed := page.NewFeed(tc.opts...)

			sub := feed.Subscribe()
			defer sub.Close()

			assert.Equal(t, tc.wantCap, cap(sub.C()))
		})
	}
}

func TestFeedDraw(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		numSubscribers int
	}{
		"no subscribers":       {numSubscribers: 0},
		"single subscriber":    {numSubscribers: 1},
		"multiple subscribers": {numSubscribers: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			feed := page.NewFeed()

			subs := make([]*page.Subscription, tc.numSubscribers)
			for i := range subs {
				subs[i] = feed.Subscribe()
			}

			require.NoError(t, feed.Draw("frame"))

			for _, sub := range subs {
				assert.Equal(t, "frame", <-sub.C())
			}
		})
	}
}

func TestFeedDropsOldest(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size   int
		frames []string
		want   []string
	}{
		"drops oldest on full": {
			size:   2,
			frames: []string{"a", "b", "c", "d"},
			want:   []string{"c", "d"},
		},
		"keeps newest frames": {
			size:   3,
			frames: []string{"1", "2", "3", "4", "5"},
			want:   []string{"3", "4", "5"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			feed := page.NewFeed(page.WithFeedSize(tc.size))
			sub := feed.Subscribe()

			for _, f := range tc.frames {
				require.NoError(t, feed.Draw(f))
			}

			var got []string
			for range tc.want {
				got = append(got, <-sub.C())
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()

	feed := page.NewFeed()
	sub := feed.Subscribe()

	require.NoError(t, feed.Draw("before"))

	sub.Close()
	sub.Close()

	require.NoError(t, feed.Draw("after"))

	assert.Equal(t, "before", <-sub.C())

	_, open := <-sub.C()
	assert.False(t, open, "channel should be closed once the feed notices the closed subscription")
}

func TestFeedClose(t *testing.T) {
	t.Parallel()

	t.Run("closes subscriptions", func(t *testing.T) {
		t.Parallel()

		feed := page.NewFeed()
		sub1 := feed.Subscribe()
		sub2 := feed.Subscribe()

		require.NoError(t, feed.Close())
		assert.True(t, feed.Closed())

		_, open1 := <-sub1.C()
		_, open2 := <-sub2.C()

		assert.False(t, open1)
		assert.False(t, open2)
	})

	t.Run("draw after close", func(t *testing.T) {
		t.Parallel()

		feed := page.NewFeed()
		require.NoError(t, feed.Close())
		require.NoError(t, feed.Close())

		require.ErrorIs(t, feed.Draw("ignored"), page.ErrClosed)
	})

	t.Run("subscribe after close", func(t *testing.T) {
		t.Parallel()

		feed := page.NewFeed()
		require.NoError(t, feed.Close())

		_, open := <-feed.Subscribe().C()
		assert.False(t, open)
	})
}

func TestFeedConcurrency(t *testing.T) {
	t.Parallel()

	feed := page.NewFeed(page.WithFeedSize(4))

	var wg sync.WaitGroup

	for range 5 {
		wg.Go(func() {
			for range 100 {
				//nolint:errcheck // The feed stays open for the whole test.
				feed.Draw("frame")
			}
		})
	}

	for range 5 {
		wg.Go(func() {
			sub := feed.Subscribe()
			for range 20 {
				select {
				case <-sub.C():
				default:
				}
			}

			sub.Close()
		})
	}

	wg.Wait()
	require.NoError(t, feed.Close())
}

func TestFeedDrawWithDrainingReader(t *testing.T) {
	t.Parallel()

	feed := page.NewFeed(page.WithFeedSize(1))
	sub := feed.Subscribe()

	var received int

	reader := make(chan struct{})

	go func() {
		defer close(reader)

		for range sub.C() {
			received++
		}
	}()

	drawn := make(chan struct{})

	go func() {
		defer close(drawn)

		for i := range 10000 {
			err := feed.Draw(string(rune('a' + i%26)))
			if err != nil {
				return
			}
		}
	}()

	select {
	case <-drawn:
	case <-time.After(10 * time.Second):
		require.FailNow(t, "Draw blocked while the reader was draining")
	}

	require.NoError(t, feed.Close())
	<-reader

	assert.Positive(t, received)
}
