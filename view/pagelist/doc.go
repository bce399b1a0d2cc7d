// Package pagelist implements the "pageList" viewer kind: a flat,
// chronological list of messages that can be re-filtered while it is
// displayed.
//
// Each entry carries its level and a topic id. Topic ids are assigned
// incrementally the first time a topic is seen, so they are only stable for
// the lifetime of one viewer. The top of every frame shows the filter
// control: the level choices (the levels active when the viewer was built)
// and the topic choices seen so far, with the current selection in
// brackets. [Viewer.SetFilter] changes the selection; [All] disables a
// dimension.
package pagelist
