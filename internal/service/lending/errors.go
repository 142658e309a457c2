package lending

import "errors"

// Lending conflict errors. Each maps to a distinct failed precondition of
// Borrow or Return; the API layer turns them into 409 responses.
var (
	// ErrNoCopiesAvailable indicates every copy of the book is lent out.
	ErrNoCopiesAvailable = errors.New("no copies of this book are available")

	// ErrAlreadyBorrowed indicates the user already holds a copy of the book.
	ErrAlreadyBorrowed = errors.New("book is already borrowed by this user")

	// ErrNotBorrowed indicates the user does not currently hold the book.
	ErrNotBorrowed = errors.New("book is not borrowed by this user")
)
