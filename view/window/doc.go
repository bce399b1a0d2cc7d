// Package window implements the "window" viewer kind: a viewer that opens
// its own top-level surface on first use and delegates rendering to an
// embedded viewer of another kind drawing on that surface.
//
// The surface is created by an [Opener]. [Terminal.Open] runs a full-screen
// Bubble Tea program showing the latest frame; tests and embedding hosts
// can supply any other function returning a [page.Surface].
//
// The viewer starts in [StateUnopened] and moves to [StateOpen] on the
// first [Viewer.Output] or an explicit [Viewer.Open]. There is no way back:
// when the user closes the surface (for example by quitting the terminal
// program) later messages are dropped and a single warning is logged.
package window
