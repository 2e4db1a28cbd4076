// Package output prints the indented step/log lines long operations emit on
// stdout. A StepLogger can be installed to redirect them (the ui renderer
// does this when stdout is a terminal).
package output

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

const (
	Indent       = "  "
	StepPrefix   = "•"
	LogConnector = "└─"
)

type StepLogger interface {
	Step(text string)
	Log(text string)
	LogOutput(text string)
}

var stepLogger StepLogger
var verbose atomic.Bool

func SetStepLogger(logger StepLogger) {
	stepLogger = logger
}

func SetVerbose(v bool) {
	verbose.Store(v)
}

func Verbose() bool {
	return verbose.Load()
}

func Step(text string) {
	if stepLogger != nil {
		stepLogger.Step(text)
		return
	}
	fmt.Fprintf(os.Stdout, "%s%s %s\n", Indent, StepPrefix, text)
}

func Stepf(format string, args ...any) {
	Step(fmt.Sprintf(format, args...))
}

func Log(text string) {
	if stepLogger != nil {
		stepLogger.Log(text)
		return
	}
	fmt.Fprintf(os.Stdout, "%s%s %s\n", Indent+Indent, LogConnector, text)
}

func Logf(format string, args ...any) {
	Log(fmt.Sprintf(format, args...))
}

func LogOutput(text string) {
	if stepLogger != nil {
		stepLogger.LogOutput(text)
		return
	}
	fmt.Fprintf(os.Stdout, "%s%s\n", LogOutputPrefix(), text)
}

// LogLines splits multi-line command output into individual log lines,
// skipping blanks.
func LogLines(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		LogOutput(line)
	}
}

func LogOutputPrefix() string {
	spaces := utf8.RuneCountInString(LogConnector) + 1
	return Indent + Indent + strings.Repeat(" ", spaces)
}
