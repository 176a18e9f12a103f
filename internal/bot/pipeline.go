package bot

import (
	"context"
	"time"

	"github.com/limaexpress/messenger-bot/internal/channels/messenger"
	"github.com/limaexpress/messenger-bot/internal/nlu/wit"
	"github.com/limaexpress/messenger-bot/internal/observability/metrics"
	"github.com/limaexpress/messenger-bot/internal/session"
	"github.com/limaexpress/messenger-bot/pkg/logging"
)

// attachmentFallback is sent when a message carries attachments instead of
// text; NLU is never consulted for those.
const attachmentFallback = "Sorry I can only process text messages for now."

// eventTimeout bounds one event's NLU + send chain so a stalled upstream
// cannot leak the goroutine forever.
const eventTimeout = 30 * time.Second

// NLUClient classifies free text into ranked entities.
type NLUClient interface {
	Classify(ctx context.Context, text string) (wit.Entities, error)
}

// IntentResponder maps recognized entities to a canned reply.
type IntentResponder interface {
	Respond(entities wit.Entities) (string, bool)
}

// Gateway delivers a text reply to a Messenger user.
type Gateway interface {
	SendText(ctx context.Context, recipientID, text string) (*messenger.SendResponse, error)
}

// Pipeline wires one inbound messaging event through session lookup, NLU
// classification, and the Send API reply.
type Pipeline struct {
	sessions  *session.Store
	nlu       NLUClient
	responder IntentResponder
	gateway   Gateway
	logger    *logging.Logger
	metrics   *metrics.BotMetrics
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(sessions *session.Store, nlu NLUClient, responder IntentResponder, gateway Gateway, logger *logging.Logger, m *metrics.BotMetrics) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		sessions:  sessions,
		nlu:       nlu,
		responder: responder,
		gateway:   gateway,
		logger:    logger,
		metrics:   m,
	}
}

// Dispatch runs HandleEvent on its own goroutine so the webhook
// acknowledgement never waits on the NLU or send calls.
func (p *Pipeline) Dispatch(event messenger.Messaging) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		p.HandleEvent(ctx, event)
	}()
}

// HandleEvent processes a single messaging event. Failures are logged and
// counted; nothing propagates back to the webhook response.
func (p *Pipeline) HandleEvent(ctx context.Context, event messenger.Messaging) {
	msg := event.Message
	if msg == nil || msg.IsEcho {
		// Delivery receipts, echoes of our own sends, and other non-message
		// events: log them and stop before any session work.
		p.logger.Info("ignoring messaging event",
			"sender_id", event.Sender.ID,
			"echo", msg != nil && msg.IsEcho,
			"timestamp", event.Timestamp,
		)
		p.metrics.ObserveInbound(eventType(event), "ignored")
		return
	}

	sessionID, created := p.sessions.FindOrCreate(event.Sender.ID)
	if created {
		p.logger.Info("new session", "session_id", sessionID, "sender_id", event.Sender.ID)
	}

	switch {
	case len(msg.Attachments) > 0:
		if p.reply(ctx, event.Sender.ID, attachmentFallback, sessionID) {
			p.metrics.ObserveInbound("attachment", "handled")
		} else {
			p.metrics.ObserveInbound("attachment", "send_failed")
		}

	case msg.Text != "":
		p.handleText(ctx, event.Sender.ID, msg.Text, sessionID)

	default:
		p.logger.Info("messaging event carried no text or attachments",
			"sender_id", event.Sender.ID,
			"mid", msg.MID,
		)
		p.metrics.ObserveInbound("empty", "ignored")
	}
}

func (p *Pipeline) handleText(ctx context.Context, senderID, text, sessionID string) {
	start := time.Now()
	entities, err := p.nlu.Classify(ctx, text)
	p.metrics.ObserveNLULatency(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("nlu classify failed",
			"error", err,
			"session_id", sessionID,
			"sender_id", senderID,
		)
		p.metrics.ObserveInbound("text", "nlu_failed")
		return
	}

	replyText, ok := p.responder.Respond(entities)
	if !ok {
		// No recognized or configured intent; the user gets no reply.
		p.metrics.ObserveInbound("text", "no_intent")
		return
	}

	if p.reply(ctx, senderID, replyText, sessionID) {
		p.metrics.ObserveInbound("text", "handled")
	} else {
		p.metrics.ObserveInbound("text", "send_failed")
	}
}

func (p *Pipeline) reply(ctx context.Context, recipientID, text, sessionID string) bool {
	if _, err := p.gateway.SendText(ctx, recipientID, text); err != nil {
		p.logger.Error("failed to send reply",
			"error", err,
			"recipient_id", recipientID,
			"session_id", sessionID,
		)
		p.metrics.ObserveOutbound("failed")
		return false
	}
	p.metrics.ObserveOutbound("sent")
	return true
}

func eventType(event messenger.Messaging) string {
	switch {
	case event.Message == nil:
		return "no_message"
	case event.Message.IsEcho:
		return "echo"
	case len(event.Message.Attachments) > 0:
		return "attachment"
	case event.Message.Text != "":
		return "text"
	default:
		return "empty"
	}
}
