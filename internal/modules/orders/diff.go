package orders

// BucketChanged reports whether a freshly fetched bucket differs meaningfully
// from the current one. Length difference is an immediate change; otherwise
// every fetched order must exist in the current bucket with the same
// last-updated timestamp. O(n) via an id lookup map — this runs on every poll
// tick for every bucket.
func BucketChanged(current, fetched []Order) bool {
	if len(current) != len(fetched) {
		return true
	}

	updatedByID := make(map[string]int64, len(current))
	for _, o := range current {
		updatedByID[o.ID] = o.UpdatedAt.UnixNano()
	}

	for _, o := range fetched {
		ts, ok := updatedByID[o.ID]
		if !ok || ts != o.UpdatedAt.UnixNano() {
			return true
		}
	}
	return false
}
