package model

// Category classifies a book.  Category rows are reference data and
// read-only from this service's perspective.
//
// Fields:
//  CategoryID   – primary key identifier.
//  CategoryName – display name, e.g. "Science Fiction".
//  CategoryType – fiction, non-fiction or special.
type Category struct {
	CategoryID   uint64 // categories.category_id
	CategoryName string // categories.category_name
	CategoryType string // categories.category_type
}
