package storage

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("document not found")

// Source fetches named JSON documents such as "questoes.json".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Writer stores documents; used when importing content.
type Writer interface {
	Put(ctx context.Context, name string, body []byte) error
}

// FetchError is a document fetch that failed at the transport level or
// returned a non-success status.
type FetchError struct {
	Name   string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s returned status %d", e.Name, e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
