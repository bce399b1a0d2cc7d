package window

import (
	"errors"
	"os"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"go.jacobcolvin.com/logview/page"
)

// ErrNoTerminal indicates the terminal surface was asked to draw on
// something that is not a terminal.
var ErrNoTerminal = errors.New("not a terminal")

// Terminal opens surfaces as full-screen Bubble Tea programs. The program
// shows the newest frame, keeping its last lines when it does not fit, and
// quits on q, esc or ctrl+c.
type Terminal struct {
	// In receives key presses. Defaults to stdin.
	In *os.File
	// Out is the terminal drawn on. Defaults to stdout.
	Out *os.File
	// Title is shown above the frame.
	Title string
	// Options are passed to [tea.NewProgram] after the input and output
	// options.
	Options []tea.ProgramOption
	// CloseFiles makes closing the surface also close In and Out.
	CloseFiles bool
}

// Open starts the program and returns a surface feeding it. Returns
// [ErrNoTerminal] when Out is not a terminal.
func (t Terminal) Open() (page.Surface, error) {
	in, out := t.In, t.Out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	if !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNoTerminal
	}

	feed := page.NewFeed()
	m := newModel(t.Title, feed.Subscribe())

	opts := append([]tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}, t.Options...)

	program := tea.NewProgram(m, opts...)

	s := &terminalSurface{
		feed: feed,
		quit: program.Quit,
		done: make(chan struct{}),
	}

	if t.CloseFiles {
		s.files = []*os.File{in}
		if out != in {
			s.files = append(s.files, out)
		}
	}

	go s.run(program)

	return s, nil
}

// terminalSurface draws into a running Bubble Tea program.
type terminalSurface struct {
	feed     *page.Feed
	quit     func()
	runErr   error
	closeErr error
	done     chan struct{}
	files    []*os.File
	once     sync.Once
}

func (s *terminalSurface) run(program *tea.Program) {
	defer close(s.done)

	_, s.runErr = program.Run()

	//nolint:errcheck // Feed.Close never fails.
	s.feed.Close()
}

func (s *terminalSurface) Draw(frame string) error {
	return s.feed.Draw(frame)
}

// Closed reports whether the program has exited.
func (s *terminalSurface) Closed() bool {
	return s.feed.Closed()
}

// Close quits the program, waits for it to exit and closes the files the
// surface owns.
func (s *terminalSurface) Close() error {
	s.once.Do(func() {
		s.quit()
		<-s.done

		errs := []error{s.runErr}
		for _, f := range s.files {
			errs = append(errs, f.Close())
		}

		s.closeErr = errors.Join(errs...)
	})

	return s.closeErr
}

type (
	frameMsg      string
	feedClosedMsg struct{}
)

// model is the Bubble Tea model behind a terminal surface.
type model struct {
	sub    *page.Subscription
	title  string
	frame  string
	height int
}

func newModel(title string, sub *page.Subscription) *model {
	return &model{title: title, sub: sub}
}

// next waits for the next frame from the feed.
func (m *model) next() tea.Msg {
	frame, ok := <-m.sub.C()
	if !ok {
		return feedClosedMsg{}
	}

	return frameMsg(frame)
}

// Init starts listening for frames.
func (m *model) Init() tea.Cmd {
	return m.next
}

// Update handles frames, resizes and quit keys.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sub.Close()

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height

	case frameMsg:
		m.frame = string(msg)

		return m, m.next

	case feedClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View renders the title and as many trailing frame lines as fit.
func (m *model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true

	return v
}

func (m *model) render() string {
	lines := strings.Split(m.frame, "\n")

	room := m.height
	if m.title != "" {
		room--
	}

	if m.height > 0 && len(lines) > room {
		lines = lines[len(lines)-max(room, 0):]
	}

	body := strings.Join(lines, "\n")
	if m.title == "" {
		return body
	}

	return m.title + "\n" + body
}
