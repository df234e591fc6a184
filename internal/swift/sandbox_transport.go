package swift

import (
	"context"
	"fmt"
	"time"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// sandboxIDPrefix tags synthetic message ids so downstream systems can tell
// test artifacts from live traffic.
const sandboxIDPrefix = "TEST-"

// SandboxTransport simulates the SWIFT network without any I/O. It is a
// first-class operating mode: deployments without live network credentials
// run against it permanently, exercising persistence and status flows with
// deterministic results.
type SandboxTransport struct {
	now func() time.Time
}

// NewSandboxTransport creates a sandbox transport.
func NewSandboxTransport() *SandboxTransport {
	return &SandboxTransport{now: time.Now}
}

func (t *SandboxTransport) TestConnection(ctx context.Context) (string, error) {
	return "sandbox transport ready (no network credentials configured)", nil
}

// Send accepts any valid message and issues a synthetic id derived from the
// message itself, so repeated sends of the same message are reproducible.
func (t *SandboxTransport) Send(ctx context.Context, msg Message) (*SendReceipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	id := fmt.Sprintf("%s%s-%s", sandboxIDPrefix, msg.Type(), msg.Reference())
	return &SendReceipt{
		MessageID: id,
		Status:    domain.DeliveryPending,
		Detail:    fmt.Sprintf("%s accepted by sandbox transport", msg.Type()),
	}, nil
}

// GetStatus reports delivered for sandbox-issued ids and unknown otherwise,
// so a sandbox deployment still distinguishes its own artifacts from garbage
// input.
func (t *SandboxTransport) GetStatus(ctx context.Context, messageID string) (*domain.DeliveryRecord, error) {
	if len(messageID) < len(sandboxIDPrefix) || messageID[:len(sandboxIDPrefix)] != sandboxIDPrefix {
		return &domain.DeliveryRecord{
			MessageID:  messageID,
			Status:     domain.DeliveryUnknown,
			RawDetails: map[string]string{"sandbox": "true", "reason": "not a sandbox message id"},
		}, nil
	}
	delivered := t.now()
	return &domain.DeliveryRecord{
		MessageID:    messageID,
		Status:       domain.DeliveryDelivered,
		DeliveryTime: &delivered,
		RawDetails:   map[string]string{"sandbox": "true"},
	}, nil
}
