// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package xlog provides the leveled logging for the commands of the module.

The messages are written with the command name as prefix to standard
error, similar to the log package with flags set to zero. In difference
to the log package output can be enabled and disabled by level. Warnings
are written by default, informational messages if the level is raised to
InfoLevel and debug messages at DebugLevel. Debug entries carry their
fields as key=value pairs.

The underlying logger is a logrus.Logger, which can be passed as
FieldLogger into the ppmd configurations.
*/
package xlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Levels supported by the package.
const (
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

// formatter writes the prefix, the message and the fields of an entry.
type formatter struct {
	mu     sync.Mutex
	prefix string
}

func (f *formatter) setPrefix(p string) {
	f.mu.Lock()
	f.prefix = p
	f.mu.Unlock()
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	f.mu.Lock()
	prefix := f.prefix
	f.mu.Unlock()
	var buf bytes.Buffer
	buf.WriteString(prefix)
	buf.WriteString(e.Message)
	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, " %s=%v", k, e.Data[k])
		}
	}
	if n := buf.Len(); n == 0 || buf.Bytes()[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

var (
	stdFormatter = &formatter{}
	std          = &logrus.Logger{
		Out:       os.Stderr,
		Formatter: stdFormatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     WarnLevel,
		ExitFunc:  os.Exit,
	}
)

// Logger returns the logger used by the package.
func Logger() *logrus.Logger { return std }

// SetPrefix sets the prefix of every message.
func SetPrefix(p string) { stdFormatter.setPrefix(p) }

// SetLevel sets the level. Messages with a lower severity are not
// written.
func SetLevel(l logrus.Level) { std.SetLevel(l) }

// SetOutput sets the destination for the messages.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Print writes an informational message.
func Print(v ...interface{}) { std.Info(fmt.Sprint(v...)) }

// Printf writes an informational message using a format string.
func Printf(format string, v ...interface{}) { std.Infof(format, v...) }

// Println writes an informational message.
func Println(v ...interface{}) { std.Info(fmt.Sprintln(v...)) }

// Warn writes a warning.
func Warn(v ...interface{}) { std.Warn(fmt.Sprint(v...)) }

// Warnf writes a warning using a format string.
func Warnf(format string, v ...interface{}) { std.Warnf(format, v...) }

// Debugf writes a debug message.
func Debugf(format string, v ...interface{}) { std.Debugf(format, v...) }

// Fatal writes the message and exits the program with status 1.
func Fatal(v ...interface{}) { std.Fatal(fmt.Sprint(v...)) }

// Fatalf writes the message using a format string and exits the program
// with status 1.
func Fatalf(format string, v ...interface{}) { std.Fatalf(format, v...) }

// Panicf writes the message and panics.
func Panicf(format string, v ...interface{}) { std.Panicf(format, v...) }
