// SPDX-License-Identifier: MPL-2.0

package natsort

import (
	"cmp"
	"slices"
	"sync"
)

// otherLabel is the normalized label pinned last by WithOtherLast.
const otherLabel = "other"

type (
	// Sorter computes and memoizes ordering keys. The cache is keyed by the raw
	// label and only holds successfully computed keys. A Sorter is safe for
	// concurrent use.
	Sorter struct {
		mu   sync.RWMutex
		keys map[string]Key
	}

	// Option configures a sort call.
	Option func(*sortOptions)

	sortOptions struct {
		otherLast bool
	}

	// keyed pairs an item with the data it is ordered by.
	keyed[T any] struct {
		item  T
		other bool
		key   Key
		index int
	}
)

var defaultSorter = NewSorter()

// WithOtherLast places labels that normalize to "other" after all other labels.
func WithOtherLast() Option {
	return func(o *sortOptions) { o.otherLast = true }
}

// NewSorter creates a Sorter with an empty key cache.
func NewSorter() *Sorter {
	return &Sorter{keys: make(map[string]Key)}
}

// Default returns the process-wide Sorter used by the package-level helpers.
func Default() *Sorter { return defaultSorter }

// Key returns the ordering key for label, computing it on first use.
func (s *Sorter) Key(label string) (Key, error) {
	s.mu.RLock()
	key, ok := s.keys[label]
	s.mu.RUnlock()
	if ok {
		return key, nil
	}

	key, err := NewKey(label)
	if err != nil {
		return Key{}, err
	}

	s.mu.Lock()
	s.keys[label] = key
	s.mu.Unlock()
	return key, nil
}

// Compare orders two labels by their keys.
func (s *Sorter) Compare(a, b string) (int, error) {
	ka, err := s.Key(a)
	if err != nil {
		return 0, err
	}
	kb, err := s.Key(b)
	if err != nil {
		return 0, err
	}
	return ka.Compare(kb), nil
}

// Len returns the number of cached keys.
func (s *Sorter) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Reset drops every cached key.
func (s *Sorter) Reset() {
	s.mu.Lock()
	s.keys = make(map[string]Key)
	s.mu.Unlock()
}

// Strings returns a naturally sorted copy of labels. The input is not modified.
func (s *Sorter) Strings(labels []string, opts ...Option) ([]string, error) {
	return SortFunc(s, labels, func(l string) string { return l }, opts...)
}

// SortFunc returns a stably sorted copy of items, ordered by the natural key
// of name(item). With WithOtherLast, items named "other" go last. Ties keep
// their input order. The first label whose key cannot be computed aborts the
// sort.
func SortFunc[T any](s *Sorter, items []T, name func(T) string, opts ...Option) ([]T, error) {
	var o sortOptions
	for _, opt := range opts {
		opt(&o)
	}

	entries := make([]keyed[T], len(items))
	for i, item := range items {
		label := name(item)
		key, err := s.Key(label)
		if err != nil {
			return nil, err
		}
		entries[i] = keyed[T]{
			item:  item,
			other: o.otherLast && NormalizeText(label) == otherLabel,
			key:   key,
			index: i,
		}
	}

	slices.SortStableFunc(entries, func(a, b keyed[T]) int {
		if a.other != b.other {
			if a.other {
				return 1
			}
			return -1
		}
		if c := a.key.Compare(b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	sorted := make([]T, len(entries))
	for i, e := range entries {
		sorted[i] = e.item
	}
	return sorted, nil
}

// Strings sorts labels with the default Sorter.
func Strings(labels []string, opts ...Option) ([]string, error) {
	return defaultSorter.Strings(labels, opts...)
}
