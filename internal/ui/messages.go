package ui

import (
	"cpdeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// editorDoneMsg contains the result of an external editor session
type editorDoneMsg struct {
	path string
	err  error
}

// runDoneMsg contains the result of compiling and running a solution
type runDoneMsg struct {
	problem string
	err     error
}

// pagerDoneMsg contains the result of a pager session
type pagerDoneMsg struct {
	err error
}
