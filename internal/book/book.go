package book

import (
	"errors"
)

const (
	// PathPrefix is the route prefix book lookups are served under.
	PathPrefix = "/books/"

	// RestrictedISBN is the identifier whose lookup is refused.
	RestrictedISBN = "1680502395"

	// FeaturedISBN and FeaturedName describe the book returned for every
	// identifier other than RestrictedISBN.
	FeaturedISBN = "1491950358"
	FeaturedName = "Building Microservices"
)

// ErrUnauthorized is returned when the caller may not look up the book.
var ErrUnauthorized = errors.New("book lookup unauthorized")

// Book is the payload of a successful lookup.
type Book struct {
	ISBN string `json:"isbn"`
	Name string `json:"name"`
}

// Featured returns the book every unrestricted lookup resolves to.
func Featured() Book {
	return Book{ISBN: FeaturedISBN, Name: FeaturedName}
}
