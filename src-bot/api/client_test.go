package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"squire/src-bot/api"
)

func TestClientAuth(t *testing.T) {
	ctx := context.Background()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// case: token goes out as an Authorization header
	func() {
		client := api.NewClient(srv.URL, "secret")
		if err := client.Get(ctx, "bot/tags/x", nil); err != nil {
			t.Error(err)
		}
		if gotAuth != "Token secret" {
			t.Error("unexpected auth header", gotAuth)
		}
	}()

	// case: blank token sends no header at all
	func() {
		client := api.NewClient(srv.URL, "")
		if err := client.Get(ctx, "bot/tags/x", nil); err != nil {
			t.Error(err)
		}
		if gotAuth != "" {
			t.Error("expected no auth header", gotAuth)
		}
	}()
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bot/tags/ask":
			json.NewEncoder(w).Encode(api.Tag{Title: "ask", Content: "How to ask a good question."})
		case "/bot/tags":
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]api.Tag{{Title: "ask"}, {Title: "off-topic"}})
			case http.MethodPost:
				var tag api.Tag
				if err := json.NewDecoder(r.Body).Decode(&tag); err != nil || tag.Title == "" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(http.StatusCreated)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found."}`))
		}
	}))
	defer srv.Close()
	client := api.NewClient(srv.URL, "secret")

	// case: fetching one tag
	func() {
		tag, err := client.Tag(ctx, "ask")
		if err != nil {
			t.Error(err)
		} else if tag.Content != "How to ask a good question." {
			t.Error("unexpected tag content", tag.Content)
		}
	}()

	// case: listing tags
	func() {
		tags, err := client.Tags(ctx)
		if err != nil {
			t.Error(err)
		} else if len(tags) != 2 {
			t.Error("unexpected tag count", len(tags))
		}
	}()

	// case: creating a tag
	func() {
		if err := client.CreateTag(ctx, api.Tag{Title: "faq", Content: "Read it first."}); err != nil {
			t.Error(err)
		}
	}()

	// case: a 404 comes back as a ResponseCodeError with the parsed body
	func() {
		_, err := client.Tag(ctx, "no-such-tag")
		var rcErr *api.ResponseCodeError
		if !errors.As(err, &rcErr) {
			t.Error("expected a response code error", err)
			return
		}
		if rcErr.Status != http.StatusNotFound {
			t.Error("unexpected status", rcErr.Status)
		}
		if rcErr.ResponseJSON["detail"] != "Not found." {
			t.Error("unexpected response json", rcErr.ResponseJSON)
		}
	}()
}

func TestClientPlainTextError(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	err := api.NewClient(srv.URL, "").Get(ctx, "bot/tags", nil)
	var rcErr *api.ResponseCodeError
	if !errors.As(err, &rcErr) {
		t.Error("expected a response code error", err)
		return
	}
	if rcErr.Status != http.StatusBadGateway {
		t.Error("unexpected status", rcErr.Status)
	}
	if rcErr.ResponseText != "upstream exploded" {
		t.Error("unexpected response text", rcErr.ResponseText)
	}
	if rcErr.ResponseJSON != nil {
		t.Error("plain text body should not parse as json", rcErr.ResponseJSON)
	}
}
