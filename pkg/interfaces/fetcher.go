package interfaces

import "context"

// Fetcher retrieves raw bytes for a web-content URL.
//
// Implementations return the response body on success and (nil, nil) when the
// resource responds with a non-success status. A non-nil error is reserved for
// transport-level failures; non-200 responses never produce one.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
