package swift_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/nvcfn/swiftgate/internal/swift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxTransport_SendIsDeterministic(t *testing.T) {
	transport := swift.NewSandboxTransport()
	msg := newTestMT103()

	first, err := transport.Send(context.Background(), msg)
	require.NoError(t, err)
	second, err := transport.Send(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "TEST-MT103-TRF20250115ABC123", first.MessageID)
	assert.Equal(t, first.MessageID, second.MessageID)
	assert.Equal(t, domain.DeliveryPending, first.Status)
}

func TestSandboxTransport_SendRejectsInvalidMessage(t *testing.T) {
	transport := swift.NewSandboxTransport()
	msg := newTestMT103()
	msg.OrderingCustomer = ""

	receipt, err := transport.Send(context.Background(), msg)
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSandboxTransport_GetStatus(t *testing.T) {
	transport := swift.NewSandboxTransport()

	record, err := transport.GetStatus(context.Background(), "TEST-MT799-FM20250115BBBBBB")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryDelivered, record.Status)
	assert.NotNil(t, record.DeliveryTime)
	assert.Equal(t, "true", record.RawDetails["sandbox"])

	record, err = transport.GetStatus(context.Background(), "LIVE-123456")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryUnknown, record.Status)
	assert.Nil(t, record.DeliveryTime)
}

func TestHTTPTransportConfig_Configured(t *testing.T) {
	assert.False(t, swift.HTTPTransportConfig{}.Configured())
	assert.False(t, swift.HTTPTransportConfig{BaseURL: "https://gw.example.com"}.Configured())
	assert.False(t, swift.HTTPTransportConfig{APIKey: "k"}.Configured())
	assert.True(t, swift.HTTPTransportConfig{BaseURL: "https://gw.example.com", APIKey: "k"}.Configured())
}

func TestHTTPTransport_Send(t *testing.T) {
	var gotAuth, gotSenderBIC string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotSenderBIC = r.Header.Get("X-Sender-BIC")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message_id": "GW-0001",
			"status":     "pending",
			"detail":     "queued",
		})
	}))
	defer server.Close()

	transport := swift.NewHTTPTransport(swift.HTTPTransportConfig{
		BaseURL:   server.URL,
		APIKey:    "secret-key",
		SenderBIC: "NVCGGLOBALXXX",
	})

	receipt, err := transport.Send(context.Background(), newTestMT103())
	require.NoError(t, err)

	assert.Equal(t, "GW-0001", receipt.MessageID)
	assert.Equal(t, domain.DeliveryPending, receipt.Status)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "NVCGGLOBALXXX", gotSenderBIC)

	assert.Equal(t, "MT103", gotPayload["message_type"])
	assert.Equal(t, "TRF20250115ABC123", gotPayload["reference"])
	raw, _ := gotPayload["raw"].(string)
	assert.Contains(t, raw, ":32A:250115USD1500.00")
	fields, _ := gotPayload["fields"].(map[string]any)
	assert.Equal(t, "CRED", fields["23B"])
}

func TestHTTPTransport_SendSurfacesGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unknown receiver BIC"}`))
	}))
	defer server.Close()

	transport := swift.NewHTTPTransport(swift.HTTPTransportConfig{BaseURL: server.URL, APIKey: "k"})

	receipt, err := transport.Send(context.Background(), newTestMT103())
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	// Status code and body come through verbatim.
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "unknown receiver BIC")
}

func TestHTTPTransport_GetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/messages/GW-0001/status":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"message_id": "GW-0001",
				"status":     "delivered",
				"details":    map[string]string{"leg": "final"},
			})
		case "/v1/messages/GW-9999/status":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	transport := swift.NewHTTPTransport(swift.HTTPTransportConfig{BaseURL: server.URL, APIKey: "k"})

	record, err := transport.GetStatus(context.Background(), "GW-0001")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryDelivered, record.Status)
	assert.Equal(t, "final", record.RawDetails["leg"])

	_, err = transport.GetStatus(context.Background(), "GW-9999")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHTTPTransport_GetStatusNormalizesUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "GW-0002", "status": "weird"})
	}))
	defer server.Close()

	transport := swift.NewHTTPTransport(swift.HTTPTransportConfig{BaseURL: server.URL, APIKey: "k"})

	record, err := transport.GetStatus(context.Background(), "GW-0002")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryUnknown, record.Status)
}
