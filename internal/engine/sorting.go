package engine

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

type compareFunc[T any] func(a, b T) int

// by orders on a single extracted key.
func by[T any, K cmp.Ordered](key func(T) K) compareFunc[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// rank stable-sorts items ascending by keys in priority order, then reverses
// the whole slice for a descending request. Ties keep their input order
// before the reversal.
func rank[T any](items []T, order domain.SortOrder, keys ...compareFunc[T]) {
	slices.SortStableFunc(items, func(a, b T) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	if order == domain.SortDesc {
		slices.Reverse(items)
	}
}

// limit truncates to n entries; n <= 0 keeps everything.
func limit[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		return items[:n]
	}
	return items
}

func formatList(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = name(item)
	}
	return out
}
