package model

// Page is the envelope returned by every list endpoint.
//
// Page numbers are 1-based: page = offset/limit + 1 (integer division, after
// the caller's limit has been clamped to a positive value). Count is the
// total number of rows in the table, independent of limit and offset.
type Page[T any] struct {
	Page  int64 `json:"page"`
	Count int64 `json:"count"`
	Items []T   `json:"items"`
}
