package history

import (
	"context"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ListInput struct {
	Page  int
	Limit int
}

type ListOutput struct {
	Events []event.ContentEvent
	Page   int
	Limit  int
}

// ListHistoryUseCase pages through the recorded content events, newest first.
type ListHistoryUseCase struct {
	repo event.Repository
}

func NewListHistoryUseCase(repo event.Repository) *ListHistoryUseCase {
	return &ListHistoryUseCase{repo: repo}
}

func (uc *ListHistoryUseCase) Execute(ctx context.Context, in ListInput) (*ListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}
	events, err := uc.repo.List(ctx, in.Limit, (in.Page-1)*in.Limit)
	if err != nil {
		return nil, apperror.NewInternal("failed to list content history", err)
	}
	return &ListOutput{Events: events, Page: in.Page, Limit: in.Limit}, nil
}

// RecordEventUseCase is run by the worker for each consumed event.
type RecordEventUseCase struct {
	repo event.Repository
}

func NewRecordEventUseCase(repo event.Repository) *RecordEventUseCase {
	return &RecordEventUseCase{repo: repo}
}

func (uc *RecordEventUseCase) Execute(ctx context.Context, e event.ContentEvent) error {
	if e.Type == "" {
		return apperror.NewInvalidInput("event has no type", nil)
	}
	return uc.repo.Append(ctx, e)
}
