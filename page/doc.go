// Package page provides the rendering surfaces that page-based viewers draw
// on.
//
// A [Surface] receives complete frames: every call to [Surface.Draw]
// replaces whatever was shown before. The package ships three surfaces:
//
//   - [Buffer] keeps frames in memory, which is what tests and embedding
//     hosts usually want.
//   - [File] rewrites a file on every frame, and [Writer] appends frames to
//     an [io.Writer].
//   - [Feed] fans frames out to subscribers, each with a bounded channel
//     that drops the oldest frame instead of blocking the drawer.
//
// A [Stylesheet] describes how levels and headings are coloured. It is
// loaded from YAML with [LoadStylesheet] and rendered with lipgloss:
//
//	sheet, err := page.LoadStylesheet("logger.yaml")
//	line := sheet.RenderLevel("warn", "disk almost full")
package page
