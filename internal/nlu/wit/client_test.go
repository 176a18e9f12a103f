package wit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/message", r.URL.Path)
		assert.Equal(t, apiVersion, r.URL.Query().Get("v"))
		assert.Equal(t, "1", r.URL.Query().Get("n"))
		assert.Equal(t, "how much is a ticket?", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer wit_token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_text":"how much is a ticket?","entities":{"intent":[{"value":"get_prices","confidence":0.93}]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "wit_token"})

	entities, err := client.Classify(context.Background(), "how much is a ticket?")
	require.NoError(t, err)

	intent := entities.First("intent")
	require.NotNil(t, intent)
	assert.Equal(t, "get_prices", intent.Value)
	assert.InDelta(t, 0.93, intent.Confidence, 1e-9)
}

func TestClassifyNoEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_text":"blah","entities":{}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})

	entities, err := client.Classify(context.Background(), "blah")
	require.NoError(t, err)
	assert.Nil(t, entities.First("intent"))
}

func TestClassifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestClassifyMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClassifyUnreachable(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Token: "tok"})

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
}

func TestEntitiesFirst(t *testing.T) {
	entities := Entities{
		"intent": {{Value: "get_prices", Confidence: 0.9}, {Value: "get_info", Confidence: 0.1}},
		"empty":  {},
	}

	first := entities.First("intent")
	require.NotNil(t, first)
	assert.Equal(t, "get_prices", first.Value)

	assert.Nil(t, entities.First("empty"))
	assert.Nil(t, entities.First("missing"))

	var none Entities
	assert.Nil(t, none.First("intent"))
}
