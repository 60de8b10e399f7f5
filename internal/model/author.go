package model

// Author is a person credited on one or more books.  Authors are
// linked to books through the `book_authors` join table and are
// created on first reference when a book names an unknown author.
type Author struct {
	AuthorID  uint64  // authors.author_id
	Name      string  // authors.name
	Biography *string // authors.biography
}
