package service

// DefaultListLimit is the page size used when the caller sends no limit.
const DefaultListLimit = 10

// clampList normalizes raw query values before any pagination arithmetic.
// A limit of zero (or anything non-positive) falls back to the default, so
// the page calculation never divides by zero. A positive limit is honored
// as-is, however large.
func clampList(limit, offset int64) (int64, int64) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pageNumber computes the 1-based page for a clamped limit/offset pair.
func pageNumber(limit, offset int64) int64 {
	return offset/limit + 1
}
