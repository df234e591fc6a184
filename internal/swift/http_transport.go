package swift

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// HTTPTransportConfig configures the live gateway client.
type HTTPTransportConfig struct {
	BaseURL   string
	APIKey    string
	SenderBIC string
	Timeout   time.Duration
}

// Configured reports whether live credentials are present. When false, the
// caller should fall back to the sandbox transport.
func (c HTTPTransportConfig) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != "" && strings.TrimSpace(c.APIKey) != ""
}

// HTTPTransport submits messages to an external SWIFT gateway over HTTPS.
type HTTPTransport struct {
	cfg    HTTPTransportConfig
	client *http.Client
}

// NewHTTPTransport creates a live transport with a bounded client timeout.
func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTransport{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// sendPayload is the gateway submission body. It carries both the raw wire
// text and the structured field list so the gateway can use either.
type sendPayload struct {
	MessageType string            `json:"message_type"`
	SenderBIC   string            `json:"sender_bic"`
	ReceiverBIC string            `json:"receiver_bic"`
	Reference   string            `json:"reference"`
	Fields      map[string]string `json:"fields"`
	FieldOrder  []string          `json:"field_order"`
	Raw         string            `json:"raw"`
	Timestamp   string            `json:"timestamp"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Detail    string `json:"detail"`
}

type statusResponse struct {
	MessageID    string            `json:"message_id"`
	Status       string            `json:"status"`
	DeliveryTime *time.Time        `json:"delivery_time"`
	Details      map[string]string `json:"details"`
}

func (t *HTTPTransport) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(t.cfg.BaseURL, "/")+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)
	req.Header.Set("X-Sender-BIC", t.cfg.SenderBIC)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (t *HTTPTransport) TestConnection(ctx context.Context) (string, error) {
	req, err := t.newRequest(ctx, http.MethodGet, "/v1/ping", nil)
	if err != nil {
		return "", apperrors.NewTransportError("failed to build ping request", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", apperrors.NewTransportError("gateway unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.NewTransportError(fmt.Sprintf("gateway ping returned %d: %s", resp.StatusCode, string(body)), nil)
	}
	return "gateway connection OK", nil
}

// Send serializes the message and POSTs it. Non-2xx responses are surfaced
// verbatim (status code and body) to the caller, never swallowed.
func (t *HTTPTransport) Send(ctx context.Context, msg Message) (*SendReceipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	raw, err := msg.Format()
	if err != nil {
		return nil, err
	}

	fields := msg.Fields()
	fieldMap := make(map[string]string, len(fields))
	order := make([]string, 0, len(fields))
	for _, f := range fields {
		fieldMap[f.Tag] = f.Value
		order = append(order, f.Tag)
	}

	body, err := json.Marshal(sendPayload{
		MessageType: string(msg.Type()),
		SenderBIC:   msg.SenderBIC(),
		ReceiverBIC: msg.ReceiverBIC(),
		Reference:   msg.Reference(),
		Fields:      fieldMap,
		FieldOrder:  order,
		Raw:         raw,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, apperrors.NewTransportError("failed to encode message payload", err)
	}

	req, err := t.newRequest(ctx, http.MethodPost, "/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewTransportError("failed to build send request", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to send message to gateway", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransportError(fmt.Sprintf("gateway rejected %s %s: %d %s", msg.Type(), msg.Reference(), resp.StatusCode, string(respBody)), nil)
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.NewTransportError("failed to decode gateway response", err)
	}
	if parsed.MessageID == "" {
		return nil, apperrors.NewTransportError("gateway response carried no message id", nil)
	}
	status := domain.DeliveryPending
	if parsed.Status != "" {
		status = domain.DeliveryStatus(parsed.Status)
	}
	return &SendReceipt{MessageID: parsed.MessageID, Status: status, Detail: parsed.Detail}, nil
}

func (t *HTTPTransport) GetStatus(ctx context.Context, messageID string) (*domain.DeliveryRecord, error) {
	req, err := t.newRequest(ctx, http.MethodGet, "/v1/messages/"+messageID+"/status", nil)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to build status request", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to poll message status", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError("message " + messageID + " not found at gateway")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransportError(fmt.Sprintf("gateway status check returned %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var parsed statusResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.NewTransportError("failed to decode status response", err)
	}
	status := domain.DeliveryStatus(parsed.Status)
	switch status {
	case domain.DeliveryPending, domain.DeliveryDelivered, domain.DeliveryFailed:
	default:
		status = domain.DeliveryUnknown
	}
	return &domain.DeliveryRecord{
		MessageID:    messageID,
		Status:       status,
		DeliveryTime: parsed.DeliveryTime,
		RawDetails:   parsed.Details,
	}, nil
}
