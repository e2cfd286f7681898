package record

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Record is implemented by every entity kept in a Store. WithID returns a copy
// of the receiver carrying the given id.
type Record[T any] interface {
	RecordID() int64
	WithID(id int64) T
}

// Store is an ordered in-memory collection. Mutations never touch the
// current backing slice; they build a new one and swap it in, so slices
// handed out by List stay valid snapshots.
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	items   []T
	nextID  int64
	version uint64
}

func New[T Record[T]](seed []T) *Store[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	var maxID int64
	for _, item := range items {
		if item.RecordID() > maxID {
			maxID = item.RecordID()
		}
	}
	return &Store[T]{items: items, nextID: maxID + 1}
}

func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version increments on every successful mutation.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create assigns a fresh id and appends the record.
func (s *Store[T]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = rec.WithID(s.mintID())
	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, rec)
	s.swap(next)
	return rec
}

// CreateFirst assigns a fresh id and puts the record at the head of the collection.
func (s *Store[T]) CreateFirst(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = rec.WithID(s.mintID())
	next := make([]T, 0, len(s.items)+1)
	next = append(next, rec)
	next = append(next, s.items...)
	s.swap(next)
	return rec
}

// Update replaces the record with the given id by patch(current).
func (s *Store[T]) Update(id int64, patch func(T) T) (T, error) {
	return s.Modify(id, func(current T) (T, error) {
		return patch(current), nil
	})
}

// Modify is Update with a fallible patch. When patch returns an error the
// collection is left untouched and the current record is returned with it.
// patch runs under the store lock and must not call back into the store.
func (s *Store[T]) Modify(id int64, patch func(T) (T, error)) (T, error) {
	return s.ModifyAmong(id, func(current T, _ []T) (T, error) {
		return patch(current)
	})
}

// ModifyAmong is Modify with the whole collection in view, for checks such
// as uniqueness that must hold against every other record at commit time.
// all is the live backing slice and must not be retained or mutated.
func (s *Store[T]) ModifyAmong(id int64, patch func(current T, all []T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, ErrNotFound
	}
	current := s.items[idx]
	updated, err := patch(current, s.items)
	if err != nil {
		return current, err
	}
	updated = updated.WithID(id)
	next := make([]T, len(s.items))
	copy(next, s.items)
	next[idx] = updated
	s.swap(next)
	return updated, nil
}

func (s *Store[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.swap(next)
	return nil
}

func (s *Store[T]) indexOf(id int64) int {
	for i, item := range s.items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) mintID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store[T]) swap(next []T) {
	s.items = next
	s.version++
}
