package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
)

type fakeStore struct {
	groups map[string]json.RawMessage
}

func (f *fakeStore) Pull(ctx context.Context, req *connect.Request[PullRequest]) (*connect.Response[PullResponse], error) {
	return connect.NewResponse(&PullResponse{Groups: f.groups}), nil
}

func (f *fakeStore) Replace(ctx context.Context, req *connect.Request[ReplaceRequest]) (*connect.Response[ReplaceResponse], error) {
	if req.Msg.Group == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group is required"))
	}
	f.groups[req.Msg.Group] = req.Msg.Record
	return connect.NewResponse(&ReplaceResponse{}), nil
}

func TestGroupStoreService_RoundTrip(t *testing.T) {
	store := &fakeStore{groups: map[string]json.RawMessage{}}
	mux := http.NewServeMux()
	path, handler := NewGroupStoreServiceHandler(store)
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewGroupStoreServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	record := json.RawMessage(`{"group_name":"A","people":[]}`)
	if _, err := client.Replace(ctx, connect.NewRequest(&ReplaceRequest{Group: "A", Record: record})); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	resp, err := client.Pull(ctx, connect.NewRequest(&PullRequest{}))
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if string(resp.Msg.Groups["A"]) != string(record) {
		t.Errorf("pulled record = %s, want %s", resp.Msg.Groups["A"], record)
	}

	_, err = client.Replace(ctx, connect.NewRequest(&ReplaceRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
	}
}

func TestCodec(t *testing.T) {
	var c Codec
	if c.Name() != "json" {
		t.Errorf("Name() = %q", c.Name())
	}

	var msg LoginRequest
	if err := c.Unmarshal(nil, &msg); err != nil {
		t.Errorf("empty body should decode to zero message: %v", err)
	}
	if err := c.Unmarshal([]byte(`{"username":"trener"}`), &msg); err != nil || msg.Username != "trener" {
		t.Errorf("Unmarshal = %+v, %v", msg, err)
	}
	if err := c.Unmarshal([]byte(`{`), &msg); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
