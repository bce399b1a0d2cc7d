// Package logger routes log messages to registered viewers, filtered by
// severity level and topic.
//
// A [Context] holds the active level sequence, the per-level alias table
// and the viewer registry. Messages enter through [Context.Log],
// [Context.LogWith], [Context.LogFull] or an alias from [Context.Alias];
// every registered viewer whose topic filter ([FilterTopic]) and level
// filter ([FilterLevel]) accept the message receives it synchronously via
// [Viewer.Output].
//
// Viewer kinds are looked up by name in a table of [Factory] functions
// supplied with [WithFactories]. The built-in kinds live under the view
// directory of this module:
//
//	lc := logger.New(logger.WithFactories(builtin.Factories(nil)))
//	defer lc.Close()
//
//	id, err := lc.AddView(logger.ViewerOptions{
//	    Type:        "console",
//	    LevelFilter: "warn",
//	    TopicFilter: []string{"auth"},
//	})
//
//	lc.LogFull("login failed", "error", "auth.login") // delivered
//	lc.LogWith("login ok", "auth.login")              // level info, filtered out
//
//	warn, _ := lc.Alias("warn")
//	warn("token expiring", "auth.session")            // delivered
//
// Levels are plain strings ordered by their position in the sequence given
// to [Context.SetLevels]. Topics are dot-separated paths; a topic filter
// matches when any segment of the topic is listed, or when it contains the
// wildcard "*".
package logger
