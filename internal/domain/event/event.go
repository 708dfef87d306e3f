package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSaved     Type = "content.saved"
	TypeReset     Type = "content.reset"
	TypeSynced    Type = "content.synced"
	TypePublished Type = "content.published"
)

type ContentEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       Type              `json:"type"`
	Sections   []string          `json:"sections,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func New(t Type, sections ...string) ContentEvent {
	return ContentEvent{
		ID:         uuid.New(),
		Type:       t,
		Sections:   sections,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e ContentEvent) error
}

// Repository stores the event history consumed by the worker.
type Repository interface {
	Append(ctx context.Context, e ContentEvent) error
	List(ctx context.Context, limit, offset int) ([]ContentEvent, error)
}
