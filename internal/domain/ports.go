package domain

import (
	"context"
	"time"
)

// ObjectStore is the live object graph of the task application.
// Implementations return ErrNotFound from Get when the id matches nothing
type ObjectStore interface {
	// CreateToDo constructs a to-do and appends it to the default container
	CreateToDo(ctx context.Context, name, notes string) (*Object, error)
	Get(ctx context.Context, kind Kind, id string) (*Object, error)
	Enumerate(ctx context.Context, kind Kind) ([]Object, error)
	// ProjectToDos returns the project's items in display order
	ProjectToDos(ctx context.Context, projectID string) ([]Object, error)
	AppendToList(ctx context.Context, listID, itemID string) error
	Move(ctx context.Context, itemID string, to MoveTarget) error
	// Schedule sets the activation date; nil clears it
	Schedule(ctx context.Context, itemID string, when *time.Time) error
	Update(ctx context.Context, itemID string, p Patch) error
}
