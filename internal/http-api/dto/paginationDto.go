package dto

// Paginated wraps list responses with the total record count so clients
// can page with limit/offset.
type Paginated[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

func NewPaginated[T any](results []T, count int64) *Paginated[T] {
	if results == nil {
		results = []T{}
	}
	return &Paginated[T]{Count: count, Results: results}
}
