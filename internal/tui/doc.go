/*
Package tui implements the terminal surface and the interaction primitives of
the gradebook.

# Architecture

The engine (internal/app) is written as ordinary blocking code: it asks the
Prompter for a menu choice or a line of text and gets the answer back. The
Prompter draws Frames on a Terminal and reads Keys from it.

  - terminal.go: the Terminal interface and ErrClosed
  - keys.go: logical keys and their translation from tea.KeyMsg
  - render.go: Frame, tones and Render, the character grid drawn for a frame
  - constants.go: rows and margins of the frame layout
  - prompter.go: Menu, Line, Masked, Confirm, Page, Show and Flash
  - menu.go, editor.go, confirm.go, pager.go: the key-driven state machines
  - model.go, screen.go: the Bubble Tea bridge

# Threading Model

Screen runs a Bubble Tea program in the alternate screen on one goroutine and
the engine on another, both supervised by an errgroup. The program forwards
keys into a buffered channel and stores the terminal size under a mutex; the
engine sends frames back with Program.Send. When the program exits ReadKey
returns ErrClosed and the engine unwinds.

# Testing

Package tuitest provides a scripted Terminal that queues keys and records
every frame, so the engine can be driven without a terminal.
*/
package tui
