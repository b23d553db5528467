package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"go.uber.org/zap"
)

// signatureHeaders maps a webhook source name to the header its provider
// signs deliveries with.
var signatureHeaders = map[string]string{
	"razorpay": "X-Razorpay-Signature",
	"cashfree": "x-webhook-signature",
}

type webhookResponse struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeWebhookResponse(w http.ResponseWriter, status int, body webhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// webhookHandler serves one provider's callback endpoint. The raw body is
// read before any parsing: signatures are computed over the exact bytes the
// provider sent.
func (s *Server) webhookHandler(name string, source gateway.WebhookSource) http.HandlerFunc {
	header := signatureHeaders[name]

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeWebhookResponse(w, http.StatusMethodNotAllowed, webhookResponse{Error: "Method not allowed"})
			return
		}

		signature := r.Header.Get(header)
		if signature == "" {
			s.metrics.RecordWebhook(name, "missing_signature")
			writeWebhookResponse(w, http.StatusBadRequest, webhookResponse{Error: "Missing signature"})
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeWebhookResponse(w, http.StatusBadRequest, webhookResponse{Error: "Unreadable body"})
			return
		}

		if err := source.HandleWebhook(r.Context(), body, signature); err != nil {
			if errors.Is(err, gateway.ErrInvalidSignature) {
				s.metrics.RecordWebhook(name, "invalid_signature")
				writeWebhookResponse(w, http.StatusBadRequest, webhookResponse{Error: "Invalid signature"})
				return
			}

			s.logger.Error("Webhook processing failed",
				zap.String("provider", name),
				zap.Error(err),
			)
			s.metrics.RecordWebhook(name, "error")
			writeWebhookResponse(w, http.StatusInternalServerError, webhookResponse{Error: "Internal server error"})
			return
		}

		s.metrics.RecordWebhook(name, "success")
		writeWebhookResponse(w, http.StatusOK, webhookResponse{Status: "success"})
	}
}
