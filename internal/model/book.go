package model

import "time"

// Book represents a catalog title as stored in the `books` table.
// The primary key is a generated 10-digit numeric identifier rather
// than an auto-increment value; see repository.UniqueID for how it
// is allocated.  Optional bibliographic fields are pointers so that
// absent values round-trip as NULL.
//
// Fields:
//  BookID          – 10-digit primary key identifier.
//  ISBN            – international standard book number.
//  Title           – required title of the work.
//  Subtitle        – optional subtitle.
//  Description     – optional free-text description.
//  Publisher       – optional publisher name.
//  PublicationYear – optional year of publication.
//  Edition         – optional edition label.
//  Language        – language of the text, defaults to "English".
//  CategoryID      – optional foreign key into categories.
//  DateAdded       – timestamp when the title entered the catalog.
type Book struct {
	BookID          uint64    // books.book_id
	ISBN            string    // books.isbn
	Title           string    // books.title
	Subtitle        *string   // books.subtitle
	Description     *string   // books.description
	Publisher       *string   // books.publisher
	PublicationYear *int      // books.publication_year
	Edition         *string   // books.edition
	Language        string    // books.language
	CategoryID      *uint64   // books.category_id
	DateAdded       time.Time // books.date_added
}
