package tui

import "errors"

// ErrClosed is returned by ReadKey once the terminal surface is gone
var ErrClosed = errors.New("terminal closed")

// Terminal is the surface the engine draws on and reads keys from. ReadKey
// blocks until a key is available.
type Terminal interface {
	Size() (width, height int)
	Present(Frame)
	ReadKey() (Key, error)
}
