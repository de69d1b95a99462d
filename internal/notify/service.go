package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"snapname/internal/config"
)

const userAgent = "snapname/0.1.0"

// ErrNotificationFailed wraps any delivery failure. Callers log and discard.
var ErrNotificationFailed = errors.New("notification failed")

// Service is the notification surface exposed to the pipeline.
type Service interface {
	// NotifyRenamed announces that oldName became newName. The returned
	// error is informational only; callers must not fail the pipeline on it.
	NotifyRenamed(ctx context.Context, oldName, newName string) error
	// Test sends a probe notification for operator verification.
	Test(ctx context.Context) error
}

// NewService builds a notifier from configuration. Unknown or disabled
// backends yield a noop implementation.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	switch cfg.Notifications.Backend {
	case "ntfy":
		timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return &ntfyService{
			endpoint: cfg.Notifications.NtfyTopic,
			client:   &http.Client{Timeout: timeout},
		}
	case "desktop":
		return &desktopService{runner: runCommand}
	default:
		return noopService{}
	}
}

// ntfyService posts plain-text messages to an ntfy topic URL.
type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRenamed(ctx context.Context, oldName, newName string) error {
	return n.send(ctx, "Renamed Screenshot", fmt.Sprintf("%s -> %s", oldName, newName))
}

func (n *ntfyService) Test(ctx context.Context) error {
	return n.send(ctx, "snapname", "notification test")
}

func (n *ntfyService) send(ctx context.Context, title, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("%w: build ntfy request: %v", ErrNotificationFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", title)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send ntfy notification: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: ntfy returned %d: %s", ErrNotificationFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// desktopService shells out to the platform notification command:
// osascript on macOS, notify-send elsewhere.
type desktopService struct {
	runner func(ctx context.Context, name string, args ...string) error
}

func (d *desktopService) NotifyRenamed(ctx context.Context, oldName, newName string) error {
	return d.send(ctx, "Renamed Screenshot", fmt.Sprintf("%s -> %s", oldName, newName))
}

func (d *desktopService) Test(ctx context.Context) error {
	return d.send(ctx, "snapname", "notification test")
}

func (d *desktopService) send(ctx context.Context, title, message string) error {
	name, args := desktopCommand(runtime.GOOS, title, message)
	if name == "" {
		return fmt.Errorf("%w: no desktop notification command for %s", ErrNotificationFailed, runtime.GOOS)
	}
	if err := d.runner(ctx, name, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotificationFailed, name, err)
	}
	return nil
}

func desktopCommand(goos, title, message string) (string, []string) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		return "osascript", []string{"-e", script}
	case "linux":
		return "notify-send", []string{title, message}
	default:
		return "", nil
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

type noopService struct{}

func (noopService) NotifyRenamed(context.Context, string, string) error { return nil }

func (noopService) Test(context.Context) error { return nil }
