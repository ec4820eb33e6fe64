package eventlog

import (
	"fmt"
	"os"
	"sync"
)

// MemorySink captures events in memory. Intended for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append implements Sink.
func (m *MemorySink) Append(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Events returns a copy of all recorded events in append order.
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// ByLevel returns recorded events with the given level.
func (m *MemorySink) ByLevel(level Level) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all recorded events.
func (m *MemorySink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// FileSink appends one line per event to a text file. Write failures are
// dropped: the sink must never turn a query operation into an error.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a sink appending to the file at path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append implements Sink.
func (f *FileSink) Append(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s [%s] %s | %s\n", e.Time.Format("2006-01-02T15:04:05.000Z07:00"), e.Level, e.Op, e.Message)
}
