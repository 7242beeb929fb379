// Package query applies the filtering, sorting and pagination shared by every
// list view. It operates on plain slices of already-normalized entities owned
// by the caller; storage never leaks in here.
package query

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Direction is the active sort direction
type Direction int

// Sort directions
const (
	Ascending Direction = iota
	Descending
)

// Toggle flips the direction. Re-selecting the same sort key in the UI calls
// this, so a double toggle lands back on ascending.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Kind tells the engine how to compare a key's values
type Kind int

// Key kinds
const (
	String Kind = iota
	Numeric
	Date
)

// Key describes how to read one sortable value out of an entity
type Key[T any] struct {
	Kind  Kind
	Value func(T) string
}

// Search keeps the items whose configured fields contain the term,
// case-insensitively. An empty term keeps everything.
func Search[T any](items []T, term string, fields ...func(T) string) []T {
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// MatchEqual keeps the items whose field equals want. An empty want means the
// predicate is unset and is skipped entirely.
func MatchEqual[T any](items []T, want string, field func(T) string) []T {
	if want == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if field(item) == want {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a copy of items ordered by the key. The sort is stable: items
// comparing equal keep their original relative order.
func Sort[T any](items []T, key Key[T], dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)

	less := func(i, j int) bool {
		return compare(key, out[i], out[j]) < 0
	}
	if dir == Descending {
		less = func(i, j int) bool {
			return compare(key, out[j], out[i]) < 0
		}
	}
	sort.SliceStable(out, less)
	return out
}

func compare[T any](key Key[T], a, b T) int {
	av, bv := key.Value(a), key.Value(b)
	switch key.Kind {
	case Numeric:
		an, bn := parseNumber(av), parseNumber(bv)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case Date:
		at, bt := parseDate(av), parseDate(bv)
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	default:
		return strings.Compare(av, bv)
	}
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseDate accepts RFC3339 timestamps or bare ISO dates. Anything else,
// including the empty string, maps to epoch 0 so undated records sort first.
func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// Paginate slices out the 1-based page of the given size. Pages beyond the
// range come back empty; clamping is the caller's job.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Pages returns the page count: ceil(total / pageSize)
func Pages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
