package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/storage"
	"github.com/mmynk/attendance/pkg/api"
)

// Ensure StoreService implements api.GroupStoreServiceHandler
var _ api.GroupStoreServiceHandler = (*StoreService)(nil)

// StoreService exposes the group store to other servers.
type StoreService struct {
	store storage.GroupStore
}

// NewStoreService creates a new StoreService with the given storage backend.
func NewStoreService(store storage.GroupStore) *StoreService {
	return &StoreService{store: store}
}

// Pull returns every stored group record.
func (s *StoreService) Pull(ctx context.Context, req *connect.Request[api.PullRequest]) (*connect.Response[api.PullResponse], error) {
	records, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("Pull failed", "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	groups := make(map[string]json.RawMessage, len(records))
	for _, record := range records {
		if _, seen := groups[record.GroupName]; seen {
			continue
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to encode group %q: %w", record.GroupName, err))
		}
		groups[record.GroupName] = raw
	}
	return connect.NewResponse(&api.PullResponse{Groups: groups}), nil
}

// Replace overwrites the stored record of one group.
func (s *StoreService) Replace(ctx context.Context, req *connect.Request[api.ReplaceRequest]) (*connect.Response[api.ReplaceResponse], error) {
	slog.Info("Replace request received", "group", req.Msg.Group)

	if req.Msg.Group == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group is required"))
	}

	record := models.NewGroupRecord(req.Msg.Group)
	if len(req.Msg.Record) > 0 {
		if err := json.Unmarshal(req.Msg.Record, record); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid record: %w", err))
		}
	}
	record.GroupName = req.Msg.Group
	record.Normalize()

	if err := s.store.ReplaceGroup(ctx, record); err != nil {
		slog.Error("Replace failed", "group", req.Msg.Group, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	return connect.NewResponse(&api.ReplaceResponse{UpdatedAt: record.UpdatedAt}), nil
}
