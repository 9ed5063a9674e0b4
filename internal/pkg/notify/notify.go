// Package notify is the user-facing notification channel for cross-cutting
// request failures. The HTTP error interceptor announces every failed call
// here exactly once; what a sink does with it (toast, stderr, log) is up to
// the presentation layer.
package notify

import "github.com/xyz-asif/gotasks/internal/pkg/logger"

type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Notifier receives one message per event. Implementations must be safe for
// concurrent use; requests complete on arbitrary goroutines.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Func adapts a function to the Notifier interface.
type Func func(severity Severity, message string)

func (f Func) Notify(severity Severity, message string) {
	f(severity, message)
}

// LogNotifier writes notifications to a logger, mapping severity to level.
type LogNotifier struct {
	Log *logger.Logger
}

func (n *LogNotifier) Notify(severity Severity, message string) {
	switch severity {
	case Warning:
		n.Log.Warn("%s", message)
	case Error:
		n.Log.Error("%s", message)
	default:
		n.Log.Info("%s", message)
	}
}

// Discard drops every notification. Useful in tests that don't assert on it.
var Discard Notifier = Func(func(Severity, string) {})
