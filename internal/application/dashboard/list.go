package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/labomak/dashboard/internal/application/gateway"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/pkg/pagination"
)

// ListController holds one module's loaded rows, the filtered subset and the
// current page. Every change keeps the page inside [1, last page].
type ListController[E any] struct {
	desc *Descriptor[E]

	mu       sync.RWMutex
	all      []E
	records  []domainRepo.Record
	filtered []int
	pinned   Criteria
	criteria Criteria
	page     int
}

// ListOption configures a ListController.
type ListOption func(*listOptions)

type listOptions struct {
	pinned Criteria
}

// WithPinned adds criteria that always apply, such as the durum of an offer tab.
func WithPinned(c Criteria) ListOption {
	return func(o *listOptions) { o.pinned = c }
}

// NewListController creates an empty controller; call Refresh to load it.
func NewListController[E any](desc *Descriptor[E], opts ...ListOption) *ListController[E] {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ListController[E]{desc: desc, pinned: o.pinned, page: 1}
}

// Descriptor returns the entity descriptor the list was built with.
func (l *ListController[E]) Descriptor() *Descriptor[E] { return l.desc }

// Refresh re-fetches every row, re-applies the current filter and returns to page 1.
func (l *ListController[E]) Refresh(ctx context.Context) {
	rows := l.desc.Table.List(ctx)
	records := make([]domainRepo.Record, len(rows))
	for i, e := range rows {
		rec, err := gateway.Encode(e)
		if err != nil {
			log.Printf("[dashboard] %s satırı kodlanamadı: %v", l.desc.Module, err)
			rec = domainRepo.Record{}
		}
		records[i] = rec
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = rows
	l.records = records
	l.applyLocked()
	l.page = 1
}

// ApplyFilter replaces the user criteria and returns to page 1.
func (l *ListController[E]) ApplyFilter(c Criteria) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria = c
	l.applyLocked()
	l.page = 1
}

func (l *ListController[E]) applyLocked() {
	effective := l.pinned.With(l.criteria)
	l.filtered = l.filtered[:0]
	for i, rec := range l.records {
		if effective.Match(rec, l.desc.Search) {
			l.filtered = append(l.filtered, i)
		}
	}
}

// Criteria returns the user criteria currently applied.
func (l *ListController[E]) Criteria() Criteria {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.criteria
}

// SetPage moves to page, clamped, and returns the page actually shown.
func (l *ListController[E]) SetPage(page int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = pagination.Clamp(page, len(l.filtered), pagination.PageSize)
	return l.page
}

// Page returns the visible slice of the filtered rows.
func (l *ListController[E]) Page() *pagination.PaginatedResult[E] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return pagination.Slice(l.filteredLocked(), l.page, pagination.PageSize)
}

// Filtered returns every row that passes the criteria.
func (l *ListController[E]) Filtered() []E {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filteredLocked()
}

func (l *ListController[E]) filteredLocked() []E {
	out := make([]E, len(l.filtered))
	for i, idx := range l.filtered {
		out[i] = l.all[idx]
	}
	return out
}

// Len is the number of loaded rows before filtering.
func (l *ListController[E]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.all)
}

// Find returns a loaded row by key.
func (l *ListController[E]) Find(key int64) (E, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.all {
		if l.desc.Key(e) == key {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Delete removes the row and refreshes the list. On failure the list is left
// as it was and the error is returned for the caller to show.
func (l *ListController[E]) Delete(ctx context.Context, key int64) error {
	if err := l.desc.Table.Delete(ctx, key); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}
