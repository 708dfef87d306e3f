package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type memRepo struct {
	events []event.ContentEvent
	err    error
	limit  int
	offset int
}

func (r *memRepo) Append(_ context.Context, e event.ContentEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append([]event.ContentEvent{e}, r.events...)
	return nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]event.ContentEvent, error) {
	r.limit, r.offset = limit, offset
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.events) {
		return []event.ContentEvent{}, nil
	}
	end := min(offset+limit, len(r.events))
	return r.events[offset:end], nil
}

func TestRecordAndList(t *testing.T) {
	repo := &memRepo{}
	record := NewRecordEventUseCase(repo)
	list := NewListHistoryUseCase(repo)
	ctx := context.Background()

	require.NoError(t, record.Execute(ctx, event.New(event.TypeSaved, "skills")))
	require.NoError(t, record.Execute(ctx, event.New(event.TypePublished)))
	assert.ErrorIs(t, record.Execute(ctx, event.ContentEvent{}), apperror.ErrInvalidInput)

	out, err := list.Execute(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, defaultLimit, out.Limit)
	require.Len(t, out.Events, 2)
	assert.Equal(t, event.TypePublished, out.Events[0].Type)
}

func TestListPaging(t *testing.T) {
	repo := &memRepo{}
	list := NewListHistoryUseCase(repo)

	_, err := list.Execute(context.Background(), ListInput{Page: 3, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, repo.limit)
	assert.Equal(t, 2*maxLimit, repo.offset)

	repo.err = errors.New("db down")
	_, err = list.Execute(context.Background(), ListInput{})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
