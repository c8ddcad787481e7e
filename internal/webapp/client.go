// Package webapp is the HTTP client for the companion lesson webapp.
//
// The webapp owns lesson content, quiz scoring and its own completion
// records; the bot never shares memory with it. This client is the only
// bridge: a pull-based completion check per lesson id.
package webapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CompletionResult is the webapp's answer for one user/lesson pair.
type CompletionResult struct {
	Completed  bool    `json:"completed"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

// Client queries the companion webapp.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// CheckCompletion asks the webapp whether the user has completed the
// lesson. Transport failures and non-success responses surface as
// errors; callers treat them as "not completed" for this attempt.
func (c *Client) CheckCompletion(ctx context.Context, userID string, lessonID int) (CompletionResult, error) {
	endpoint := fmt.Sprintf("%s/api/lesson/%d/check_completion?user_id=%s",
		c.baseURL, lessonID, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to build completion check request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("completion check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CompletionResult{}, fmt.Errorf("completion check returned status %d", resp.StatusCode)
	}

	var result CompletionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return CompletionResult{}, fmt.Errorf("failed to decode completion check response: %w", err)
	}
	return result, nil
}

// LessonURL returns the deep link into the webapp for a lesson.
func (c *Client) LessonURL(lessonID int, userID string) string {
	return fmt.Sprintf("%s/lesson/%d?user_id=%s", c.baseURL, lessonID, url.QueryEscape(userID))
}
