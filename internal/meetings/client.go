package meetings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrServiceUnavailable reports a failed call to the meeting service itself
// (network error or non-success status). It is deliberately distinct from
// provider-side failures, which the meeting service handles internally.
var ErrServiceUnavailable = errors.New("meeting service unavailable")

// JoinRequest is the wire request for create-or-join.
type JoinRequest struct {
	MeetingName  string `json:"meetingName"`
	AttendeeName string `json:"attendeeName"`
	MediaRegion  string `json:"mediaRegion,omitempty"`
}

// Client calls the meeting coordinator service over HTTP. No retries: a
// single failure surfaces immediately to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Join(ctx context.Context, meetingName, attendeeName string) (*JoinInfo, error) {
	body, err := json.Marshal(JoinRequest{MeetingName: meetingName, AttendeeName: attendeeName})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/meetings/join", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var info JoinInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrServiceUnavailable, err)
	}
	return &info, nil
}

func (c *Client) End(ctx context.Context, meetingName string) error {
	endpoint := c.baseURL + "/api/v1/meetings/" + url.PathEscape(meetingName)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
