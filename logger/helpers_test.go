package logger_test

import (
	"slices"
	"sync"

	"go.jacobcolvin.com/logview/logger"
)

type delivery struct {
	Msg   string
	Level string
	Topic string
}

// recorder is a viewer that remembers everything it receives.
type recorder struct {
	got    []delivery
	closed int
	mu     sync.Mutex
}

func (r *recorder) Output(msg, level, topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.got = append(r.got, delivery{Msg: msg, Level: level, Topic: topic})
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed++

	return nil
}

func (r *recorder) deliveries() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.got)
}

// recorderKind returns a factory producing rec for every viewer added.
func recorderKind(rec *recorder) logger.Factory {
	return func(_ logger.ViewerOptions, _ logger.Env) (logger.Viewer, error) {
		return rec, nil
	}
}

// newRecorded creates a Context with one recorder registered under "rec"
// using the given filters.
func newRecorded(levelFilter string, topicFilter ...string) (*logger.Context, *recorder) {
	rec := &recorder{}
	lc := logger.New(logger.WithFactory("recorder", recorderKind(rec)))

	_, err := lc.AddViewWithID(logger.ViewerOptions{
		Type:        "recorder",
		LevelFilter: levelFilter,
		TopicFilter: topicFilter,
	}, "rec")
	if err != nil {
		panic(err)
	}

	return lc, rec
}
