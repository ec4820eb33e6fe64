package eventlog

import (
	"sync"
	"time"
)

// Level classifies an event.
type Level string

// Event levels.
const (
	LevelStart   Level = "start"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelFailure Level = "failure"
)

// Event is one append-only record of an operation notice.
type Event struct {
	Time    time.Time
	Level   Level
	Op      string
	Message string
}

// Sink receives events. Implementations must tolerate concurrent Append calls.
type Sink interface {
	Append(Event)
}

// Log fans events out to its sinks. Each event record stays intact even when
// concurrent callers interleave.
type Log struct {
	mu    sync.RWMutex
	sinks []Sink
}

// New creates a log writing to the given sinks.
func New(sinks ...Sink) *Log {
	return &Log{sinks: sinks}
}

// Attach adds a sink to the log.
func (l *Log) Attach(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// Append records an event, stamping the time if unset.
func (l *Log) Append(e Event) {
	if l == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range l.sinks {
		s.Append(e)
	}
}

// Start records the beginning of an operation.
func (l *Log) Start(op, message string) {
	l.Append(Event{Level: LevelStart, Op: op, Message: message})
}

// Success records a completed operation.
func (l *Log) Success(op, message string) {
	l.Append(Event{Level: LevelSuccess, Op: op, Message: message})
}

// Warning records a non-fatal condition.
func (l *Log) Warning(op, message string) {
	l.Append(Event{Level: LevelWarning, Op: op, Message: message})
}

// Failure records a fatal operation error.
func (l *Log) Failure(op, message string) {
	l.Append(Event{Level: LevelFailure, Op: op, Message: message})
}

var (
	defaultMu  sync.RWMutex
	defaultLog = New(NewZapSink(DefaultConfig()))
)

// Default returns the process-wide log.
func Default() *Log {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLog
}

// SetDefault replaces the process-wide log and returns the previous one.
func SetDefault(l *Log) *Log {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLog
	defaultLog = l
	return prev
}
