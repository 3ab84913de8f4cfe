package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbaille/things/internal/fetcher"
	"github.com/pbaille/things/internal/todos"
)

func TestSplitLinkArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		link     string
		wantName string
		wantLink string
	}{
		{name: "plain name", args: []string{"buy", "milk"}, wantName: "buy milk"},
		{name: "lone url", args: []string{"https://example.com/a"}, wantLink: "https://example.com/a"},
		{name: "www url", args: []string{"www.example.com"}, wantLink: "www.example.com"},
		{name: "url among words", args: []string{"read", "https://example.com"}, wantName: "read https://example.com"},
		{name: "explicit link wins", args: []string{"https://a.example"}, link: "https://b.example",
			wantName: "https://a.example", wantLink: "https://b.example"},
	}
	for _, tt := range tests {
		name, link := splitLinkArg(tt.args, tt.link)
		if name != tt.wantName || link != tt.wantLink {
			t.Errorf("%s: splitLinkArg() = (%q, %q), want (%q, %q)", tt.name, name, link, tt.wantName, tt.wantLink)
		}
	}
}

func TestCaptureLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Release notes</title></head><body><p>Version 2 is out.</p></body></html>`))
	}))
	defer srv.Close()

	req := todos.CreateRequest{Notes: "read later"}
	if err := captureLink(context.Background(), fetcher.New(), &req, srv.URL); err != nil {
		t.Fatalf("captureLink() error = %v", err)
	}
	if req.Name != "Release notes" {
		t.Errorf("name = %q", req.Name)
	}
	want := srv.URL + "\n\nVersion 2 is out.\n\nread later"
	if req.Notes != want {
		t.Errorf("notes = %q, want %q", req.Notes, want)
	}
}

func TestCaptureLinkFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var req todos.CreateRequest
	if err := captureLink(context.Background(), fetcher.New(), &req, srv.URL); err != nil {
		t.Fatalf("captureLink() error = %v", err)
	}
	if req.Name != srv.URL || req.Notes != srv.URL {
		t.Errorf("expected the link as name and notes, got name=%q notes=%q", req.Name, req.Notes)
	}
	if strings.Contains(req.Notes, "\n") {
		t.Errorf("notes = %q", req.Notes)
	}
}
