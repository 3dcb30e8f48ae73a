// Package notify defines how the engine surfaces user-facing toasts.
// The engine never blocks on a notifier; implementations must return
// quickly and swallow their own failures.
package notify

import "github.com/simslyfe/server/internal/platform/logger"

// Notifier receives user-facing notifications from the engine.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// LogNotifier writes notifications to the server log. Used by the
// headless simulator and as the default when no transport is attached.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Info(title, message string) {
	n.log.Info("notification", "title", title, "message", message)
}

func (n *LogNotifier) Error(title, message string) {
	n.log.Warn("notification", "title", title, "message", message)
}

// Noop discards all notifications. For tests.
type Noop struct{}

func (Noop) Info(title, message string)  {}
func (Noop) Error(title, message string) {}
