// Package console implements the "console" viewer kind, which writes every
// message it receives through a charm [log.Logger].
//
// The message is logged with the level-named method when the level is one
// charm knows (debug, info, warn, error) and with the unlevelled Print
// otherwise. Messages whose topic is not the default topic are prefixed
// with "<topic>: ".
package console
