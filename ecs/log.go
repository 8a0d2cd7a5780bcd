package ecs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog so structural operations can attach structured fields (entity id,
// archetype signature, component name) without the rest of the package depending on zerolog
// directly.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a Logger writing human-readable output to w, or os.Stderr if w is nil.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Logger: zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()}
}

// NewNopLogger returns a Logger that discards everything; the World's default.
func NewNopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// logEntityEvent attaches e's id, world and generation to a log event.
func (l *Logger) logEntityEvent(evt *zerolog.Event, e Entity) *zerolog.Event {
	return evt.Uint32("entity_id", uint32(e.id)).Uint16("entity_world", uint16(e.world)).Uint32("entity_gen", e.generation)
}

// LogCreate records a newly created entity at debug level.
func (l *Logger) LogCreate(e Entity) {
	l.logEntityEvent(l.Debug(), e).Msg("entity created")
}

// LogDestroy records a destroyed entity at debug level.
func (l *Logger) LogDestroy(e Entity) {
	l.logEntityEvent(l.Debug(), e).Msg("entity destroyed")
}

// LogTransition records an archetype transition (Add[T]/Remove[T]) at trace level.
func (l *Logger) LogTransition(e Entity, component string, added bool) {
	evt := l.logEntityEvent(l.Trace(), e).Str("component", component)
	if added {
		evt.Msg("component added")
	} else {
		evt.Msg("component removed")
	}
}
