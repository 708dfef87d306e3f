package editor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// listDraft is the edit buffer of one list item.
type listDraft[T any, D any] interface {
	ItemID() int64
	Set(field, value string) error
	// Commit validates the buffer and returns the item to store.
	Commit() (T, error)
	Clone() D
}

// ListEditor edits an id-keyed list section such as projects or experiences.
type ListEditor[T any, D listDraft[T, D]] struct {
	section    content.Section
	resource   string
	store      *state.Store
	workspaces *Workspaces
	now        func() time.Time

	items    func(content.State) []T
	setItems func(*content.State, []T)
	idOf     func(T) int64
	open     func(T) D
	blank    func(id int64, now time.Time) T
}

// BeginEdit opens a draft copy of item id, replacing any open draft of this section.
func (e *ListEditor[T, D]) BeginEdit(_ context.Context, sessionID uuid.UUID, id int64) (D, error) {
	var zero D
	cur := e.store.Current()
	idx := e.index(cur, id)
	if idx < 0 {
		return zero, apperror.NewNotFound(e.resource, strconv.FormatInt(id, 10))
	}

	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d := e.open(e.items(cur)[idx])
	ws.drafts[e.section] = d
	return d.Clone(), nil
}

func (e *ListEditor[T, D]) UpdateDraft(_ context.Context, sessionID uuid.UUID, field, value string) (D, error) {
	var zero D
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[D](ws, e.section)
	if !ok {
		return zero, noDraft(e.section)
	}
	if err := d.Set(field, value); err != nil {
		return zero, invalidDraft(err)
	}
	return d.Clone(), nil
}

// Save merges the open draft for id back into the list. A failed save keeps the draft.
func (e *ListEditor[T, D]) Save(ctx context.Context, sessionID uuid.UUID, id int64) (T, error) {
	var zero T
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[D](ws, e.section)
	if !ok {
		return zero, noDraft(e.section)
	}
	if d.ItemID() != id {
		return zero, apperror.NewInvalidInput(
			fmt.Sprintf("open draft is for %s %d, not %d", e.resource, d.ItemID(), id), nil)
	}
	item, err := d.Commit()
	if err != nil {
		return zero, invalidDraft(err)
	}

	_, err = e.store.Update(ctx, func(st content.State) (content.State, error) {
		idx := e.index(st, id)
		if idx < 0 {
			return st, apperror.NewNotFound(e.resource, strconv.FormatInt(id, 10))
		}
		list := e.items(st)
		list[idx] = item
		e.setItems(&st, list)
		return st, nil
	})
	if err != nil {
		return zero, err
	}
	delete(ws.drafts, e.section)
	return item, nil
}

func (e *ListEditor[T, D]) Cancel(_ context.Context, sessionID uuid.UUID) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	delete(ws.drafts, e.section)
	ws.mu.Unlock()
}

// Add inserts a default item with a fresh id at the head of the list and opens it.
func (e *ListEditor[T, D]) Add(ctx context.Context, sessionID uuid.UUID) (D, error) {
	var zero D
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	var created T
	_, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		now := e.now()
		id := content.NextID(now, func(id int64) bool { return e.index(st, id) >= 0 })
		created = e.blank(id, now)
		e.setItems(&st, append([]T{created}, e.items(st)...))
		return st, nil
	})
	if err != nil {
		return zero, err
	}
	d := e.open(created)
	ws.drafts[e.section] = d
	return d.Clone(), nil
}

// Delete removes item id. An open draft for the same id is dropped with it.
func (e *ListEditor[T, D]) Delete(ctx context.Context, sessionID uuid.UUID, id int64, confirmed bool) error {
	if !confirmed {
		return notConfirmed()
	}
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	_, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		idx := e.index(st, id)
		if idx < 0 {
			return st, apperror.NewNotFound(e.resource, strconv.FormatInt(id, 10))
		}
		list := e.items(st)
		e.setItems(&st, append(list[:idx:idx], list[idx+1:]...))
		return st, nil
	})
	if err != nil {
		return err
	}
	if d, ok := draftOf[D](ws, e.section); ok && d.ItemID() == id {
		delete(ws.drafts, e.section)
	}
	return nil
}

// Draft returns the open draft of this section, if any.
func (e *ListEditor[T, D]) Draft(sessionID uuid.UUID) (D, bool) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := draftOf[D](ws, e.section)
	if !ok {
		return d, false
	}
	return d.Clone(), true
}

func (e *ListEditor[T, D]) index(st content.State, id int64) int {
	for i, it := range e.items(st) {
		if e.idOf(it) == id {
			return i
		}
	}
	return -1
}
