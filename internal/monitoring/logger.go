// Package monitoring holds the logging streams used by the evaluation
// harness and the result store. The core metric functions never log.
package monitoring

import (
	"io"
	"log"
	"sync"
)

// LogWriters holds the io.Writers for each logging stream.
type LogWriters struct {
	Ops   io.Writer
	Diag  io.Writer
	Trace io.Writer
}

var (
	mu          sync.RWMutex
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

// SetLogWriters configures all three logging streams at once.
// Pass nil for any writer to disable that stream. All streams start disabled.
func SetLogWriters(w LogWriters) {
	mu.Lock()
	defer mu.Unlock()
	opsLogger = newLogger(w.Ops)
	diagLogger = newLogger(w.Diag)
	traceLogger = newLogger(w.Trace)
}

// newLogger creates a *log.Logger for a given writer, or returns nil if w is nil.
func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, "[pointmetric] ", log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream (run lifecycle, failures worth acting on).
func Opsf(format string, args ...interface{}) {
	logTo(&opsLogger, format, args...)
}

// Diagf logs to the diag stream (per-run summaries, schema migrations).
func Diagf(format string, args ...interface{}) {
	logTo(&diagLogger, format, args...)
}

// Tracef logs to the trace stream (per-frame scores).
func Tracef(format string, args ...interface{}) {
	logTo(&traceLogger, format, args...)
}

func logTo(target **log.Logger, format string, args ...interface{}) {
	mu.RLock()
	l := *target
	mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
