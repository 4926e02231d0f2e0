// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib

import (
	"log"
	"os"
)

// LogReporter is a vlsim.Reporter that writes diagnostics to a log.Logger.
//
type LogReporter struct {
	l        *log.Logger
	warnings int
	errors   int
	aborted  bool
}

// NewLogReporter returns a new LogReporter writing to l. If l is nil, messages
// are written to os.Stderr.
//
func NewLogReporter(l *log.Logger) *LogReporter {
	if l == nil {
		l = log.New(os.Stderr, "", 0)
	}
	return &LogReporter{l: l}
}

// Warn implements vlsim.Reporter.
//
func (r *LogReporter) Warn(msg string) {
	r.warnings++
	r.l.Print("warning: ", msg)
}

// Error implements vlsim.Reporter.
//
func (r *LogReporter) Error(msg string) {
	r.errors++
	r.l.Print("error: ", msg)
}

// Abort implements vlsim.Reporter. It only latches the aborted state, callers
// check it with Aborted.
//
func (r *LogReporter) Abort() {
	r.aborted = true
}

// Aborted returns true if Abort has been called since the last call to Clear.
//
func (r *LogReporter) Aborted() bool { return r.aborted }

// Counts returns the number of warnings and errors reported.
//
func (r *LogReporter) Counts() (warnings, errors int) { return r.warnings, r.errors }

// Clear resets the aborted state.
//
func (r *LogReporter) Clear() { r.aborted = false }
