package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"branch-cash-ledger/config"
	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// HTTPClient abstracts *http.Client for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// alertNotification is the JSON body posted to the configured webhook.
type alertNotification struct {
	AlertID    string `json:"alert_id"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details,omitempty"`
	RiskScore  int    `json:"risk_score"`
	Timestamp  int64  `json:"timestamp"`
}

// WebhookNotifier implements ports.NotificationDispatcher by POSTing signed
// alert payloads to an operations webhook. A circuit breaker keeps a dead
// endpoint from stalling alert producers.
type WebhookNotifier struct {
	cfg        config.NotifyConfig
	sigSvc     *HMACSignatureService
	httpClient HTTPClient
	breaker    *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

// NewWebhookNotifier creates a WebhookNotifier. An empty webhook URL disables
// dispatch entirely.
func NewWebhookNotifier(cfg config.NotifyConfig, sigSvc *HMACSignatureService, httpClient HTTPClient, log zerolog.Logger) ports.NotificationDispatcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "alert-webhook",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("notifier circuit breaker state change")
		},
	})

	return &WebhookNotifier{
		cfg:        cfg,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		breaker:    breaker,
		log:        log,
	}
}

// Dispatch posts the alert to the webhook. Callers treat the returned error
// as best-effort information only; it never affects ledger state.
func (n *WebhookNotifier) Dispatch(ctx context.Context, alert *domain.SecurityAlert) error {
	if n.cfg.WebhookURL == "" {
		n.log.Debug().Str("alert_id", alert.ID.String()).Msg("notifier: no webhook URL configured, skipping")
		return nil
	}

	payload := alertNotification{
		AlertID:    alert.ID.String(),
		Type:       string(alert.Type),
		Severity:   string(alert.Severity),
		EntityType: alert.EntityType,
		EntityID:   alert.EntityID.String(),
		Details:    alert.Details,
		RiskScore:  alert.RiskScore,
		Timestamp:  alert.CreatedAt.Unix(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal alert notification: %w", err)
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		return nil, n.post(ctx, body)
	})
	if err != nil {
		n.log.Warn().Err(err).
			Str("alert_id", alert.ID.String()).
			Str("severity", string(alert.Severity)).
			Msg("notifier: alert delivery failed")
		return err
	}

	n.log.Debug().Str("alert_id", alert.ID.String()).Msg("notifier: alert delivered")
	return nil
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) error {
	timeout := n.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", n.sigSvc.Sign(n.cfg.HMACSecret, string(body)))

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
