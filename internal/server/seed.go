package server

import "fmt"

type seedBook struct {
	Title  string
	Author string
	Year   int
}

var seedBooks = []seedBook{
	{"The Go Programming Language", "Alan A. A. Donovan", 2015},
	{"Concurrency in Go", "Katherine Cox-Buday", 2017},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", 1969},
	{"Dune", "Frank Herbert", 1965},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", 1968},
}

// Seed fills an empty catalog with sample books. It does nothing when books
// already exist and returns how many were added.
func Seed(catalog Catalog) (int, error) {
	if len(catalog.ListBooks()) > 0 {
		return 0, nil
	}
	for i, b := range seedBooks {
		if _, err := catalog.CreateBook(b.Title, b.Author, b.Year); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", b.Title, err)
		}
	}
	return len(seedBooks), nil
}
