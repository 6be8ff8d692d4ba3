package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

const defaultColor = 0xF57C00

// Webhook posts operational reports to a Discord channel.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Reporter = (*Webhook)(nil)

// NewWebhook creates a Discord webhook reporter.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Report posts the report as a single embed.
func (w *Webhook) Report(ctx context.Context, report model.Report) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	color := report.Color
	if color == 0 {
		color = defaultColor
	}
	embed := map[string]any{
		"title":       truncate(report.Title, 256),
		"description": truncate(report.Description, 4096),
		"fields":      convertFields(report.Fields),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"color":       color,
		"footer":      map[string]string{"text": "cayyap-notifier"},
	}
	if report.URL != "" {
		embed["url"] = report.URL
	}

	body, err := json.Marshal(map[string]any{"embeds": []map[string]any{embed}})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info(ctx, "report posted to discord", "title", report.Title)
	return nil
}

func convertFields(fields []model.ReportField) []map[string]any {
	if len(fields) == 0 {
		return nil
	}

	result := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		result = append(result, map[string]any{
			"name":   truncate(field.Name, 256),
			"value":  truncate(field.Value, 1024),
			"inline": field.Inline,
		})
	}
	return result
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return strings.TrimSpace(value[:limit-3]) + "..."
}
