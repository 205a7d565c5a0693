// Package notify implements the fire-and-forget alert collaborators:
// OS-level notification dispatch and sound playback. Both shell out to
// platform tools; failures are logged and swallowed because the in-app
// alert banner is the primary channel and must not depend on them.
package notify

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"time"
)

// dispatchTimeout bounds how long a helper process may run.
const dispatchTimeout = 10 * time.Second

// Desktop dispatches notifications through the platform's notifier:
// notify-send on Linux, osascript on macOS.
type Desktop struct{}

// NewDesktop creates a desktop notifier.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Notify sends a notification without blocking the caller. Errors are
// logged, never returned.
func (d *Desktop) Notify(title, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			script := "display notification " + appleQuote(body) +
				" with title " + appleQuote(title)
			cmd = exec.CommandContext(ctx, "osascript", "-e", script)
		default:
			cmd = exec.CommandContext(ctx, "notify-send", "--app-name=miniremind", title, body)
		}

		if err := cmd.Run(); err != nil {
			log.Printf("notification dispatch failed: %v", err)
		}
	}()
}

// appleQuote wraps s in double quotes for an osascript expression,
// escaping embedded quotes and backslashes.
func appleQuote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}

// Null is a no-op notifier for headless or test use.
type Null struct{}

// Notify discards the notification.
func (Null) Notify(title, body string) {}
