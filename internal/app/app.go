// Package app drives a Handler through its lifecycle: Init once, then events
// and frames until a handler asks to stop, then Quit once.
package app

import (
	"context"
	"log"

	"cube-demo/internal/platform"
)

// Result is what a lifecycle callback asks the runtime to do next.
type Result int

const (
	Continue Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// ExitCode maps a terminal result to a process exit status.
func (r Result) ExitCode() int {
	if r == Failure {
		return 1
	}
	return 0
}

// Handler receives the lifecycle callbacks. All calls happen on the
// goroutine that called Run.
type Handler interface {
	Init() error
	Iterate() Result
	Event(ev platform.Event) Result
	// Quit is called exactly once, after a failed Init as well.
	Quit(result Result)
}

// EventSource pumps platform events. Polled only after Init succeeds.
type EventSource interface {
	PollEvents() []platform.Event
}

// App is the event-loop runtime.
type App struct {
	handler Handler
	events  EventSource
	logger  *log.Logger
	limiter *Limiter
}

// New returns a runtime for h. A nil logger uses log.Default().
func New(h Handler, events EventSource, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{handler: h, events: events, logger: logger}
}

// SetFPSLimit caps the frame rate; zero runs unpaced.
func (a *App) SetFPSLimit(fps int) {
	a.limiter = NewLimiter(fps)
}

// Run blocks until the handler finishes and returns the process exit code.
// Cancelling ctx is delivered to the handler as a quit event.
func (a *App) Run(ctx context.Context) int {
	if err := a.handler.Init(); err != nil {
		a.logger.Printf("init: %v", err)
		a.handler.Quit(Failure)
		return Failure.ExitCode()
	}

	result := Continue
	for result == Continue {
		if result = a.tick(ctx); result == Continue {
			a.limiter.Wait()
		}
	}
	a.handler.Quit(result)
	return result.ExitCode()
}

func (a *App) tick(ctx context.Context) Result {
	if ctx.Err() != nil {
		if r := a.handler.Event(platform.Event{Type: platform.EventQuit}); r != Continue {
			return r
		}
		return Success
	}
	for _, ev := range a.events.PollEvents() {
		if r := a.handler.Event(ev); r != Continue {
			return r
		}
	}
	return a.handler.Iterate()
}
