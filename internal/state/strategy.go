// Package state provides the in-memory domain containers consumed by the
// CLI and TUI. Each container caches the latest server-ordered list of one
// resource and keeps it consistent with the remote store.
//
// Two consistency strategies cover all writes:
//
//   - refetch-after-write: derived fields (spent_percentage, status,
//     projections) are computed server-side and cannot be reproduced
//     locally, so create/update/delete trigger a full list reload with the
//     container's last-used filters instead of a local merge.
//   - patch-in-place: idempotent toggles (mark-read, toggle-active) echo
//     the complete updated record, so merging it over the cached item is
//     equivalent to a refetch for that item and saves a round-trip.
package state

// patchInPlace replaces the cached item carrying the same id as updated.
// Returns false when the item is not cached.
func patchInPlace[T any](items []T, idOf func(T) int, updated T) bool {
	want := idOf(updated)
	for i := range items {
		if idOf(items[i]) == want {
			items[i] = updated
			return true
		}
	}
	return false
}

// removeByID drops the cached item with the given id, preserving order.
func removeByID[T any](items []T, idOf func(T) int, id int) []T {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
