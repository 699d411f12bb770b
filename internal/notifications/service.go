package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"galley/internal/config"
	"galley/internal/logging"
)

const userAgent = "Galley/0.1.0"

// Service defines the notification surface exposed to import components.
type Service interface {
	NotifyImportCompleted(ctx context.Context, title string, reports, marketing, covers int, landingPage bool) error
	NotifyPackageUnmatched(ctx context.Context, filename string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned. A nil
// logger discards log output.
func NewService(cfg *config.Config, logger *slog.Logger) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:     topic,
		client:       &http.Client{Timeout: timeout},
		sendImports:  cfg.Notifications.Imports,
		sendFailures: cfg.Notifications.Errors,
		logger:       logger.With(logging.String(logging.FieldComponent, "notifications")),
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	sendImports  bool
	sendFailures bool
	logger       *slog.Logger
}

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, title string, reports, marketing, covers int, landingPage bool) error {
	if !n.sendImports {
		return nil
	}
	title = strings.TrimSpace(title)
	parts := []string{
		fmt.Sprintf("%d reports", reports),
		fmt.Sprintf("%d marketing assets", marketing),
		fmt.Sprintf("%d covers", covers),
	}
	if landingPage {
		parts = append(parts, "landing page")
	}
	data := payload{
		title:   "Galley - Import Complete",
		message: fmt.Sprintf("✅ Provisioned %s: %s", title, strings.Join(parts, ", ")),
		tags:    []string{"galley", "import", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPackageUnmatched(ctx context.Context, filename string) error {
	if !n.sendImports {
		return nil
	}
	filename = strings.TrimSpace(filename)
	data := payload{
		title:   "Galley - Unmatched Package",
		message: fmt.Sprintf("Could not match %s to a catalog entry\nManual review required", filename),
		tags:    []string{"galley", "unmatched", "review"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.sendFailures {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Galley - Error",
		message:  builder.String(),
		tags:     []string{"galley", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Galley - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"galley", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	logging.WithContext(ctx, n.logger).Debug("notification delivered",
		logging.String("title", data.title), logging.Any("tags", data.tags))
	return nil
}

type noopService struct{}

func (noopService) NotifyImportCompleted(context.Context, string, int, int, int, bool) error {
	return nil
}
func (noopService) NotifyPackageUnmatched(context.Context, string) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
