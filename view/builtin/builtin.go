// Package builtin collects the viewer kinds shipped with this module into
// a single factory table for [logger.WithFactories].
package builtin

import (
	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/view/console"
	"go.jacobcolvin.com/logview/view/pagelist"
	"go.jacobcolvin.com/logview/view/pagetopics"
	"go.jacobcolvin.com/logview/view/window"
)

// Factories returns the built-in viewer kinds keyed by type name. Window
// viewers open their surface with open; a nil open uses a [window.Terminal]
// on stdin and stdout.
func Factories(open window.Opener) map[string]logger.Factory {
	if open == nil {
		open = window.Terminal{}.Open
	}

	return map[string]logger.Factory{
		console.Kind:    console.New,
		pagetopics.Kind: pagetopics.New,
		pagelist.Kind:   pagelist.New,
		window.Kind:     window.NewFactory(open),
	}
}
