package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/pkg/api"
)

// Ensure Client implements Remote
var _ Remote = (*Client)(nil)

// defaultTimeout bounds each call when the caller's context has no deadline.
const defaultTimeout = 10 * time.Second

// Client is a Remote that calls GroupStoreService on another server.
type Client struct {
	api   *api.GroupStoreServiceClient
	token string
}

// NewClient returns a client for the server at baseURL, authenticating with
// the shared sync token. A nil httpClient means http.DefaultClient.
func NewClient(httpClient connect.HTTPClient, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		api:   api.NewGroupStoreServiceClient(httpClient, strings.TrimRight(baseURL, "/")),
		token: token,
	}
}

// Pull fetches every group record from the remote server.
func (c *Client) Pull(ctx context.Context) (map[string]*models.GroupRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	req := connect.NewRequest(&api.PullRequest{})
	c.authorize(req.Header())
	resp, err := c.api.Pull(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: pull: %v", ErrTransport, err)
	}

	groups := make(map[string]*models.GroupRecord, len(resp.Msg.Groups))
	for name, raw := range resp.Msg.Groups {
		var record models.GroupRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("%w: failed to decode group %q: %v", ErrTransport, name, err)
		}
		record.GroupName = name
		record.Normalize()
		groups[name] = &record
	}
	return groups, nil
}

// Replace sends one group record to the remote server.
func (c *Client) Replace(ctx context.Context, group string, record *models.GroupRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode group %q: %w", group, err)
	}

	req := connect.NewRequest(&api.ReplaceRequest{Group: group, Record: raw})
	c.authorize(req.Header())
	if _, err := c.api.Replace(ctx, req); err != nil {
		return fmt.Errorf("%w: replace %q: %v", ErrTransport, group, err)
	}
	return nil
}

func (c *Client) authorize(header http.Header) {
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultTimeout)
}
