package provider

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"go.opentelemetry.io/otel/trace"
)

func TestRedditFetchNew(t *testing.T) {
	listing := `{"data":{"children":[
		{"data":{"id":"abc","title":"ETH looks strong","score":42}},
		{"data":{"id":"def","title":"Thoughts on staking?","score":7}}]}}`
	comments := `[
		{"data":{"children":[{"kind":"t3","data":{"body":""}}]}},
		{"data":{"children":[
			{"kind":"t1","data":{"body":"bullish for sure"}},
			{"kind":"more","data":{"body":"ignored"}},
			{"kind":"t1","data":{"body":"I am not convinced"}}]}}]`

	p := NewRedditProvider(trace.NewNoopTracerProvider().Tracer("test"), 0)
	p.baseURL = "https://example.com"
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("User-Agent"); got == "" {
			t.Fatal("expected a User-Agent header")
		}
		switch {
		case strings.Contains(req.URL.Path, "/comments/"):
			if !strings.Contains(req.URL.RawQuery, "limit=5") || !strings.Contains(req.URL.RawQuery, "depth=1") {
				t.Fatalf("unexpected comments query: %s", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, comments), nil
		case strings.HasSuffix(req.URL.Path, "/r/cryptocurrency/new.json"):
			if !strings.Contains(req.URL.RawQuery, "limit=2") {
				t.Fatalf("unexpected listing query: %s", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, listing), nil
		default:
			t.Fatalf("unexpected request path: %s", req.URL.Path)
			return nil, nil
		}
	})}

	posts, err := p.FetchNew(context.Background(), "cryptocurrency", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != "ETH looks strong" || posts[0].Score != 42 {
		t.Fatalf("unexpected first post: %+v", posts[0])
	}
	if len(posts[0].Comments) != 2 {
		t.Fatalf("expected 2 comments after kind filtering, got %d", len(posts[0].Comments))
	}
	if posts[0].Comments[0] != "bullish for sure" {
		t.Fatalf("unexpected comment: %q", posts[0].Comments[0])
	}
}

func TestRedditFetchNewCommentFailureKeepsPost(t *testing.T) {
	listing := `{"data":{"children":[{"data":{"id":"abc","title":"still here","score":1}}]}}`

	p := NewRedditProvider(trace.NewNoopTracerProvider().Tracer("test"), 0)
	p.baseURL = "https://example.com"
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "/comments/") {
			return jsonResponse(http.StatusTooManyRequests, `{"message":"rate limited"}`), nil
		}
		return jsonResponse(http.StatusOK, listing), nil
	})}

	posts, err := p.FetchNew(context.Background(), "cryptocurrency", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || len(posts[0].Comments) != 0 {
		t.Fatalf("expected one comment-less post, got %+v", posts)
	}
}

func TestRedditFetchNewNoPosts(t *testing.T) {
	p := NewRedditProvider(trace.NewNoopTracerProvider().Tracer("test"), 0)
	p.baseURL = "https://example.com"
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":{"children":[]}}`), nil
	})}

	if _, err := p.FetchNew(context.Background(), "cryptocurrency", 5); err == nil {
		t.Fatal("expected error for empty listing")
	}
}

func TestSanitizeText(t *testing.T) {
	got := sanitizeText("  hello\nworld\r  again  ", 0)
	if got != "hello world again" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
	if got := sanitizeText("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation, got %q", got)
	}
}

func TestSanitizeTextKeepsValidUTF8(t *testing.T) {
	got := sanitizeText("ビットコイン強気", 4)
	if got != "ビットコ" {
		t.Fatalf("expected rune-boundary truncation, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got)
	}
	// Short multi-byte text exceeds maxLen in bytes but not in runes.
	if got := sanitizeText("émoji", 5); got != "émoji" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}
