// Package logio provides a small leveled logger, and an io.Writer that logs
// whole lines through any printf style function.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes "LEVEL: message" lines to an output stream. It remembers
// whether any error was logged, so that a command may exit non-zero.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the output stream, closing any prior one that is an
// io.Closer.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if cl, ok := log.out.(io.Closer); ok {
		cl.Close()
	}
	log.out = out
}

// ExitCode returns 0 if no error has been logged, 1 if an error has been
// logged, or 2 if the logger itself failed to write.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf style function that logs at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) {
		log.Printf(level, mess, args...)
	}
}

// ErrorIf logs any non-nil error.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%+v", err)
	}
}

// Errorf logs at ERROR level, and sets a non-zero ExitCode.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.exitCode < 1 {
		log.exitCode = 1
	}
	log.printf("ERROR", mess, args...)
}

// Printf logs a line at the given level; an empty level omits the prefix.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf(level, mess, args...)
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.out == nil {
		log.buf.Reset()
		return
	}
	if _, err := log.buf.WriteTo(log.out); err != nil {
		log.buf.Reset()
		log.exitCode = 2
	}
}
