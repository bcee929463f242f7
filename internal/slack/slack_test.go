package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPostsPayload(t *testing.T) {
	var received Payload
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("payload is not valid JSON: %s", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, nil)

	payload := &Payload{
		Text:   "test",
		Blocks: []Block{Header("見出し"), Section("本文")},
	}
	if err := client.Send(context.Background(), payload); err != nil {
		t.Fatalf("send: %s", err)
	}

	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
	if received.Text != "test" || len(received.Blocks) != 2 {
		t.Fatalf("payload mangled in transit: %+v", received)
	}
}

func TestSendRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, nil)

	err := client.Send(context.Background(), &Payload{Text: "test"})
	if err == nil {
		t.Fatalf("expected an error for a 500 response")
	}
}
