package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=book

// Finder resolves an identifier taken from the request path to a book.
type Finder interface {
	Find(ctx context.Context, isbn string) (Book, error)
}
