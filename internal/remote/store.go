package remote

import (
	"context"
	"fmt"

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/storage"
)

// Ensure StoreRemote implements Remote
var _ Remote = (*StoreRemote)(nil)

// StoreRemote is a Remote backed by a storage.GroupStore.
type StoreRemote struct {
	store storage.GroupStore
}

// NewStoreRemote wraps a group store.
func NewStoreRemote(store storage.GroupStore) *StoreRemote {
	return &StoreRemote{store: store}
}

// Pull lists every stored group.
func (r *StoreRemote) Pull(ctx context.Context) (map[string]*models.GroupRecord, error) {
	records, err := r.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	groups := make(map[string]*models.GroupRecord, len(records))
	for _, record := range records {
		// Rows are ordered newest first; keep the first of any duplicate name.
		if _, seen := groups[record.GroupName]; !seen {
			groups[record.GroupName] = record
		}
	}
	return groups, nil
}

// Replace deletes and re-inserts the row of one group.
func (r *StoreRemote) Replace(ctx context.Context, group string, record *models.GroupRecord) error {
	record = record.Clone()
	record.GroupName = group
	if err := r.store.ReplaceGroup(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}
