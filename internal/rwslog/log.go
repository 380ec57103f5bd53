// Package rwslog provides the bracketed-component logger used across the
// rws client, matching the "[Component] message" convention of the agent
// this module was grown from.
package rwslog

import (
	"log"
	"os"
)

// Logger writes lines prefixed with a fixed "[component]" tag.
type Logger struct {
	tag string
	out *log.Logger
}

// New returns a Logger tagged with component, writing to stderr.
func New(component string) *Logger {
	return &Logger{
		tag: "[" + component + "] ",
		out: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Printf(format string, args ...interface{}) {
	l.out.Printf(l.tag+format, args...)
}

func (l *Logger) Println(args ...interface{}) {
	l.out.Println(append([]interface{}{l.tag}, args...)...)
}
