package messenger

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/limaexpress/messenger-bot/pkg/logging"
)

// WebhookHandler handles Messenger webhook verification and inbound events.
type WebhookHandler struct {
	verifyToken string
	onEvent     func(event Messaging)
	logger      *logging.Logger
}

// NewWebhookHandler creates a new webhook handler.
// onEvent is called once per messaging event in each delivery.
func NewWebhookHandler(verifyToken string, logger *logging.Logger, onEvent func(Messaging)) *WebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookHandler{
		verifyToken: verifyToken,
		onEvent:     onEvent,
		logger:      logger,
	}
}

// HandleVerification handles the GET webhook subscription challenge.
// A matching verify token echoes the challenge back; anything else is a
// 400 with no body.
func (h *WebhookHandler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, q.Get("hub.challenge"))
		return
	}

	w.WriteHeader(http.StatusBadRequest)
}

// HandleInbound handles POST webhook deliveries. The delivery is
// acknowledged with 200 before any event is processed; Messenger retries
// webhooks that do not answer quickly, and downstream failures must never
// surface here.
func (h *WebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	var event WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("webhook: undecodable payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)

	if event.Object != "page" {
		h.logger.Debug("webhook: ignoring non-page object", "object", event.Object)
		return
	}

	for _, entry := range event.Entry {
		for _, m := range entry.Messaging {
			if h.onEvent != nil {
				h.onEvent(m)
			}
		}
	}
}
