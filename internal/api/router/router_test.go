package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/limaexpress/messenger-bot/internal/bot"
	"github.com/limaexpress/messenger-bot/internal/channels/messenger"
	"github.com/limaexpress/messenger-bot/internal/nlu/wit"
	"github.com/limaexpress/messenger-bot/internal/responder"
	"github.com/limaexpress/messenger-bot/internal/session"
)

// newTestRouter wires the full pipeline against the given Wit and Graph API
// stand-ins, the way cmd/api does.
func newTestRouter(t *testing.T, witURL, graphURL string) http.Handler {
	t.Helper()

	sessions := session.NewStore(0)
	witClient := wit.NewClient(wit.Config{BaseURL: witURL, Token: "wit_tok"})
	gateway := messenger.NewClient("page_tok")
	gateway.SetGraphAPIBase(graphURL)

	pipeline := bot.NewPipeline(sessions, witClient, responder.New(nil), gateway, nil, nil)
	webhook := messenger.NewWebhookHandler("SECRET", nil, pipeline.Dispatch)

	return New(&Config{Webhook: webhook})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestWebhookVerificationRoute(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=SECRET&hub.challenge=42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "42" {
		t.Fatalf("expected body 42, got %q", w.Body.String())
	}
}

func TestWebhookDeliveryAlwaysAcked(t *testing.T) {
	// Wit is down; the delivery must still be acknowledged with 200.
	witSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer witSrv.Close()

	r := newTestRouter(t, witSrv.URL, "http://127.0.0.1:1")

	body := `{"object":"page","entry":[{"messaging":[{"sender":{"id":"user_1"},"message":{"mid":"m1","text":"prices?"}}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite NLU failure, got %d", w.Code)
	}
}
