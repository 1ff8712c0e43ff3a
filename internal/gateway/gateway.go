package gateway

import (
	"context"
	"fmt"

	"garderobe/internal/models"
)

// Gateway translates wardrobe mutation intents into operations on the
// remote per-user document collection. Every operation touches exactly one
// document; there is nothing transactional across items.
type Gateway interface {
	// FetchAll returns every wardrobe document for the user. An empty
	// wardrobe is an empty slice, not an error.
	FetchAll(ctx context.Context) ([]models.WardrobeItem, error)

	// AddColor is an idempotent union-add: the document is created if
	// absent, and adding an already-present color is a no-op.
	AddColor(ctx context.Context, itemID, color string) error

	// RemoveColor drops one color from the document. The caller computes
	// isLastColor from its local state; when true the whole document is
	// deleted. The gateway trusts the flag, which is a known consistency
	// risk if the caller's state has drifted from the remote copy.
	RemoveColor(ctx context.Context, itemID, color string, isLastColor bool) error

	// SetColors replaces the full color list for one item.
	SetColors(ctx context.Context, itemID string, colors []string) error

	// DeleteItem unconditionally deletes the item's document.
	DeleteItem(ctx context.Context, itemID string) error
}

// RemoteError wraps the transport error behind a failed gateway call so
// callers can report sync failures without inspecting driver errors.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote wardrobe %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
