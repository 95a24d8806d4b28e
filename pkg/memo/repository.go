package memo

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
)

// Store loads and saves the complete memo list.
type Store interface {
	LoadAll() ([]Memo, error)
	SaveAll(memos []Memo) error
}

// Repository implements memo CRUD on top of a Store.
//
// Every operation reloads the full list from the store, mutates a local copy
// and writes the full list back. No list is cached between calls, so changes
// made to the store by another process are never overwritten with stale data.
type Repository struct {
	store  Store
	now    func() time.Time
	maxLen int
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithMaxContentLength limits memo content to n characters. n <= 0 means unlimited.
func WithMaxContentLength(n int) Option {
	return func(r *Repository) {
		r.maxLen = n
	}
}

// NewRepository creates a repository backed by store.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxContentLength returns the configured content limit (0 = unlimited).
func (r *Repository) MaxContentLength() int {
	return r.maxLen
}

// List returns all memos in stored order.
func (r *Repository) List() ([]Memo, error) {
	return r.store.LoadAll()
}

// Get retrieves a memo by id.
func (r *Repository) Get(id int64) (Memo, error) {
	memos, err := r.store.LoadAll()
	if err != nil {
		return Memo{}, err
	}

	idx := find(memos, id)
	if idx == -1 {
		return Memo{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return memos[idx], nil
}

// Create appends a new memo with the given content.
func (r *Repository) Create(content string) (Memo, error) {
	trimmed, err := ValidateContent(content, r.maxLen)
	if err != nil {
		return Memo{}, err
	}

	memos, err := r.store.LoadAll()
	if err != nil {
		return Memo{}, err
	}

	now := Stamp(r.now())
	m := Memo{
		ID:        NextID(memos, now),
		Content:   trimmed,
		CreatedAt: now,
	}

	memos = append(memos, m)
	if err := r.store.SaveAll(memos); err != nil {
		return Memo{}, err
	}

	return m, nil
}

// Update replaces the content of the memo with the given id.
func (r *Repository) Update(id int64, content string) (Memo, error) {
	trimmed, err := ValidateContent(content, r.maxLen)
	if err != nil {
		return Memo{}, err
	}

	memos, err := r.store.LoadAll()
	if err != nil {
		return Memo{}, err
	}

	idx := find(memos, id)
	if idx == -1 {
		return Memo{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	now := Stamp(r.now())
	memos[idx].Content = trimmed
	memos[idx].UpdatedAt = &now
	memos[idx].RawUpdatedAt = ""

	if err := r.store.SaveAll(memos); err != nil {
		return Memo{}, err
	}

	return memos[idx], nil
}

// Delete removes the memo with the given id.
// Deleting an id that is already gone returns ErrNotFound and writes nothing.
func (r *Repository) Delete(id int64) error {
	memos, err := r.store.LoadAll()
	if err != nil {
		return err
	}

	kept := make([]Memo, 0, len(memos))
	for _, m := range memos {
		if m.ID != id {
			kept = append(kept, m)
		}
	}

	if len(kept) == len(memos) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return r.store.SaveAll(kept)
}

// Match returns the memos whose content matches the glob pattern, in stored order.
// An empty pattern matches every memo.
func (r *Repository) Match(pattern string) ([]Memo, error) {
	memos, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return memos, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("memo: invalid pattern %q: %w", pattern, err)
	}

	var result []Memo
	for _, m := range memos {
		if g.Match(m.Content) {
			result = append(result, m)
		}
	}
	return result, nil
}
