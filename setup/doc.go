// Package setup reads YAML setup files that configure a
// [logger.Context]: the level sequence, the defaults and the viewers to
// register.
//
//	levels: [trace, debug, info, warn, error]
//	defaultTopic: app
//	views:
//	  - id: console
//	    type: console
//	    levelFilter: warn
//	  - type: pageList
//	    output: /tmp/logview.txt
//
// Files are validated against the JSON Schema returned by [Schema] before
// they are decoded.
package setup
