// Package remote connects application state to the hosted group store.
//
// A Remote pulls every group record and replaces single records. StoreRemote
// talks to a storage.GroupStore directly, Client talks to another server's
// GroupStoreService. Poller refreshes local state on a fixed schedule.
package remote

import (
	"context"
	"errors"

	"github.com/mmynk/attendance/internal/models"
)

// ErrTransport reports that the remote store could not be reached or refused a call.
var ErrTransport = errors.New("remote store unavailable")

// Remote is the sync adapter between application state and the hosted store.
type Remote interface {
	// Pull returns every stored group keyed by group name.
	Pull(ctx context.Context) (map[string]*models.GroupRecord, error)

	// Replace overwrites the stored record of one group.
	Replace(ctx context.Context, group string, record *models.GroupRecord) error
}
