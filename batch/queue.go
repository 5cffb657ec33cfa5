// Package batch reads URL lists and tracks progress through them.
package batch

// Queue hands out URLs in file order and counts successes.
// Duplicates are kept: every line is processed.
type Queue struct {
	items     []string
	idx       int // current read position
	succeeded int
}

// NewQueue creates a Queue over urls.
func NewQueue(urls []string) *Queue {
	return &Queue{items: urls}
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}

// Done records that the URL last returned by Next succeeded.
func (q *Queue) Done() {
	q.succeeded++
}

// Succeeded returns the number of URLs marked done.
func (q *Queue) Succeeded() int {
	return q.succeeded
}

// Processed returns the number of URLs handed out so far, which is also
// the 1-based position of the URL last returned by Next.
func (q *Queue) Processed() int {
	return q.idx
}

// Len returns the total number of URLs.
func (q *Queue) Len() int {
	return len(q.items)
}
