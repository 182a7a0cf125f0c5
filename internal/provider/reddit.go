package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	redditBaseURL     = "https://www.reddit.com"
	defaultRedditUA   = "crypto-defi-yield-farming-agent/1.0 (+https://github.com/AdonisVillanueva/crypto-defi-yield-farming-agent)"
	defaultRedditSize = 10

	// Top-level comments scored per post.
	maxCommentsPerPost = 5
)

// RedditProvider fetches subreddit posts and their top-level comments via the
// public reddit JSON API.
type RedditProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
	tracer    trace.Tracer
}

func NewRedditProvider(tracer trace.Tracer, timeout time.Duration) *RedditProvider {
	return &RedditProvider{
		client:    newFetchClient(timeout),
		baseURL:   redditBaseURL,
		userAgent: defaultRedditUA,
		tracer:    tracer,
	}
}

// FetchNew returns the newest posts of a subreddit, each with up to five
// top-level comments. A failed comment fetch leaves the post with no
// comments rather than failing the whole batch.
func (p *RedditProvider) FetchNew(ctx context.Context, subreddit string, limit int) ([]RedditPost, error) {
	_, span := p.tracer.Start(ctx, "reddit.fetch-new")
	defer span.End()

	subreddit = strings.TrimSpace(subreddit)
	if subreddit == "" {
		return nil, fmt.Errorf("subreddit is required")
	}
	if limit <= 0 {
		limit = defaultRedditSize
	}
	if limit > 100 {
		limit = 100
	}

	base := strings.TrimRight(p.baseURL, "/")
	u := fmt.Sprintf("%s/r/%s/new.json?limit=%d", base, url.PathEscape(subreddit), limit)
	body, err := p.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					ID    string  `json:"id"`
					Title string  `json:"title"`
					Score float64 `json:"score"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode reddit listing: %w", err)
	}

	posts := make([]RedditPost, 0, len(payload.Data.Children))
	for _, row := range payload.Data.Children {
		data := row.Data
		if strings.TrimSpace(data.ID) == "" || strings.TrimSpace(data.Title) == "" {
			continue
		}
		post := RedditPost{
			ID:    data.ID,
			Title: sanitizeText(data.Title, 300),
			Score: data.Score,
		}
		comments, err := p.fetchTopComments(ctx, subreddit, data.ID)
		if err == nil {
			post.Comments = comments
		}
		posts = append(posts, post)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("subreddit %s returned no posts", subreddit)
	}

	return posts, nil
}

func (p *RedditProvider) fetchTopComments(ctx context.Context, subreddit, postID string) ([]string, error) {
	base := strings.TrimRight(p.baseURL, "/")
	u := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=%d&depth=1",
		base, url.PathEscape(subreddit), url.PathEscape(postID), maxCommentsPerPost)
	body, err := p.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns a two-element array: [post, comments].
	var listings []struct {
		Data struct {
			Children []struct {
				Kind string `json:"kind"`
				Data struct {
					Body string `json:"body"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("decode reddit comments: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	comments := make([]string, 0, maxCommentsPerPost)
	for _, row := range listings[1].Data.Children {
		if row.Kind != "t1" {
			continue
		}
		text := sanitizeText(row.Data.Body, 420)
		if text == "" {
			continue
		}
		comments = append(comments, text)
		if len(comments) >= maxCommentsPerPost {
			break
		}
	}
	return comments, nil
}

func (p *RedditProvider) getJSON(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reddit API error %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.ReplaceAll(in, "\n", " ")
	in = strings.ReplaceAll(in, "\r", " ")
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		// Truncate on a rune boundary so multi-byte text stays valid UTF-8.
		runes := []rune(in)
		if len(runes) > maxLen {
			runes = runes[:maxLen]
		}
		in = string(runes)
	}
	return in
}
