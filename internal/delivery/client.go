// Package delivery posts contact drafts to the configured delivery endpoint.
package delivery

import (
	"context"
	"fmt"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/Osariemen7/portfolio/internal/contact"
)

// Client sends drafts to one endpoint. A single attempt is made per draft.
type Client struct {
	http  fastshot.ClientHttpMethods
	path  string
	query url.Values
}

// New returns a Client for endpoint. A zero timeout leaves the request
// bounded only by its context.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid contact endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid contact endpoint %q: must be an absolute URL", endpoint)
	}

	builder := fastshot.NewClient(u.Scheme + "://" + u.Host)
	if u.User != nil {
		password, _ := u.User.Password()
		builder.Auth().BasicAuth(u.User.Username(), password)
	}
	if timeout > 0 {
		builder = builder.Config().SetTimeout(timeout)
	}
	c := builder.
		Config().SetFollowRedirects(true).
		Header().Add("Content-Type", "application/json").
		Build()

	// The path is joined onto the base URL, so the query travels separately.
	return &Client{http: c, path: u.EscapedPath(), query: u.Query()}, nil
}

// Deliver posts d as JSON. Any status outside 2xx comes back as a
// *contact.RejectedError carrying the response body; anything else is a
// transport failure.
func (c *Client) Deliver(ctx context.Context, d contact.Draft) error {
	req := c.http.POST(c.path)
	for key, values := range c.query {
		for _, v := range values {
			req = req.Query().AddParam(key, v)
		}
	}

	resp, err := req.
		Context().Set(ctx).
		Body().AsJSON(d).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	defer resp.Body().Close()

	if !resp.Status().Is2xxSuccessful() {
		body, err := resp.Body().AsString()
		if err != nil {
			body = fmt.Sprintf("failed to read error response: %v", err)
		}
		return &contact.RejectedError{StatusCode: resp.Status().Code(), Body: body}
	}

	return nil
}
