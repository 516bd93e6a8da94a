package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/composetag/internal/logging/events"
	"golang.org/x/time/rate"
)

// DefaultHubURL is the Docker Hub API base.
const DefaultHubURL = "https://hub.docker.com"

// hubTagsResponse mirrors the fields of
// GET /v2/repositories/{repo}/tags that the picker needs. Older deployments
// name the cursors next_page/prev_page, the current API next/previous.
type hubTagsResponse struct {
	Results  *[]hubTag `json:"results"`
	NextPage *string   `json:"next_page"`
	PrevPage *string   `json:"prev_page"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
}

type hubTag struct {
	Name        string     `json:"name"`
	LastUpdated string     `json:"last_updated"`
	Images      []hubImage `json:"images"`
}

type hubImage struct {
	Architecture string `json:"architecture"`
	OS           string `json:"os"`
	Size         int64  `json:"size"`
}

// HubSource lists tags through the Docker Hub API.
type HubSource struct {
	baseURL  string
	client   *http.Client
	pageSize int
	limiter  *rate.Limiter
}

// HubOption customises a HubSource.
type HubOption func(*HubSource)

// WithBaseURL points the source at another Hub-compatible endpoint.
func WithBaseURL(base string) HubOption {
	return func(h *HubSource) {
		if strings.TrimSpace(base) != "" {
			h.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) HubOption {
	return func(h *HubSource) {
		if client != nil {
			h.client = client
		}
	}
}

// WithPageSize sets the page_size query parameter; 0 leaves the server default.
func WithPageSize(size int) HubOption {
	return func(h *HubSource) {
		if size > 0 {
			h.pageSize = size
		}
	}
}

// WithRateLimit spaces requests at least every apart. Zero disables limiting.
func WithRateLimit(every time.Duration) HubOption {
	return func(h *HubSource) {
		if every <= 0 {
			h.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		h.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

// NewHubSource returns a HubSource with a 30s request timeout and a 250ms
// minimum spacing between requests.
func NewHubSource(opts ...HubOption) *HubSource {
	h := &HubSource{
		baseURL: DefaultHubURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// tagsURL builds the first-page URL. Each path segment is escaped, and dot or
// empty segments are rejected so the name cannot leave the repository path.
func (h *HubSource) tagsURL(repo string) (string, error) {
	segments := strings.Split(repo, "/")
	for i, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: invalid repository path %q", ErrNoImage, repo)
		}
		segments[i] = url.PathEscape(seg)
	}
	u := fmt.Sprintf("%s/v2/repositories/%s/tags", h.baseURL, strings.Join(segments, "/"))
	if h.pageSize > 0 {
		u += "?" + url.Values{"page_size": {strconv.Itoa(h.pageSize)}}.Encode()
	}
	return u, nil
}

// FetchTags retrieves exactly one page.
func (h *HubSource) FetchTags(ctx context.Context, repo, cursor string) (TagPage, error) {
	target := cursor
	if target == "" {
		u, err := h.tagsURL(repo)
		if err != nil {
			return TagPage{}, err
		}
		target = u
	}
	if err := h.limiter.Wait(ctx); err != nil {
		return TagPage{}, &FetchError{URL: target, Err: err}
	}
	events.Fetch.Request(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return TagPage{}, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return TagPage{}, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return TagPage{}, &FetchError{URL: target, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var body hubTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TagPage{}, &DecodeError{URL: target, Err: err}
	}
	return body.page(repo, target)
}

func (r hubTagsResponse) page(repo, target string) (TagPage, error) {
	if r.Results == nil {
		return TagPage{}, &DecodeError{URL: target, Err: errors.New("missing results")}
	}
	page := TagPage{
		Repo: repo,
		Rows: make([]TagEntry, 0, len(*r.Results)),
		Next: firstNonEmpty(r.NextPage, r.Next),
		Prev: firstNonEmpty(r.PrevPage, r.Previous),
	}
	for _, tag := range *r.Results {
		entry := TagEntry{Name: tag.Name}
		if tag.LastUpdated != "" {
			ts, err := time.Parse(time.RFC3339, tag.LastUpdated)
			if err != nil {
				return TagPage{}, &DecodeError{URL: target, Err: fmt.Errorf("tag %q: %w", tag.Name, err)}
			}
			entry.LastUpdated = ts
		}
		for _, img := range tag.Images {
			entry.Images = append(entry.Images, Image{OS: img.OS, Architecture: img.Architecture, Size: img.Size})
		}
		page.Rows = append(page.Rows, entry)
	}
	return page, nil
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}
