package pipeline

import "fmt"

// FetchError reports a failure to obtain the table: network, status,
// robots, cache, or a page without the expected table or column.
// It aborts the run.
type FetchError struct {
	Op  string // "robots", "fetch", "cache", "table", "column"
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
