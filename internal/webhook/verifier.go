package webhook

import (
	"fmt"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

// Verifier checks the Standard Webhooks signature headers
// (webhook-id / webhook-timestamp / webhook-signature) Dodo Payments signs
// deliveries with. A payload that fails here never reaches the dispatcher.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type verifierImpl struct {
	wh *standardwebhooks.Webhook
}

func NewVerifier(webhookKey string) (Verifier, error) {
	wh, err := standardwebhooks.NewWebhook(webhookKey)
	if err != nil {
		return nil, fmt.Errorf("init webhook verifier: %w", err)
	}
	return &verifierImpl{wh: wh}, nil
}

func (v *verifierImpl) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
