package page

import (
	"sync"
	"sync/atomic"
)

const defaultFeedSize = 8

// Feed is a [Surface] that fans frames out to subscribers.
//
// Every subscriber owns a buffered channel with ring-buffer semantics: when
// the channel is full the oldest frame is dropped, so [Feed.Draw] never
// blocks on a slow reader. Safe for concurrent use.
//
// Create instances with [NewFeed].
type Feed struct {
	subs   []*Subscription
	size   int
	mu     sync.Mutex
	closed bool
}

// FeedOption configures a [Feed].
type FeedOption func(*Feed)

// WithFeedSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithFeedSize(n int) FeedOption {
	return func(f *Feed) {
		f.size = max(n, 1)
	}
}

// NewFeed creates a [Feed]. The default buffer size is 8 frames.
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{size: defaultFeedSize}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Draw delivers frame to every active subscription. Subscriptions closed
// since the previous draw are released. Returns [ErrClosed] after
// [Feed.Close].
func (f *Feed) Draw(frame string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	live := f.subs[:0]
	for _, sub := range f.subs {
		if sub.done.Load() {
			close(sub.ch)
			continue
		}

		select {
		case sub.ch <- frame:
		default:
			// The reader may drain the channel between the two selects.
			select {
			case <-sub.ch:
			default:
			}

			select {
			case sub.ch <- frame:
			default:
			}
		}

		live = append(live, sub)
	}

	clear(f.subs[len(live):])
	f.subs = live

	return nil
}

// Subscribe registers a new [Subscription]. On a closed Feed the returned
// subscription's channel is already closed.
func (f *Feed) Subscribe() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &Subscription{ch: make(chan string, f.size)}
	if f.closed {
		close(sub.ch)
		return sub
	}

	f.subs = append(f.subs, sub)

	return sub
}

// Close closes every subscription channel. Later draws fail with
// [ErrClosed]. Idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	f.closed = true
	for _, sub := range f.subs {
		close(sub.ch)
	}

	f.subs = nil

	return nil
}

// Closed reports whether [Feed.Close] has been called.
func (f *Feed) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// Subscription receives frames from a [Feed].
type Subscription struct {
	ch   chan string
	done atomic.Bool
}

// C returns the channel delivering frames.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close detaches the subscription. The Feed closes the channel on its next
// draw. Idempotent.
func (s *Subscription) Close() {
	s.done.Store(true)
}
