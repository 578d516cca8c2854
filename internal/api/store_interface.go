package api

import "errors"

// ErrDuplicateEmail is returned by AddUser when the unique email constraint
// is violated.
var ErrDuplicateEmail = errors.New("email already registered")

// Store is the persistence contract the router depends on. Implementations
// must make UpsertResponse atomic per (user_id, financial_year) and scope the
// response queries strictly to the given owner.
type Store interface {
	AddUser(u *User) error
	FindUserByEmail(email string) (*User, error)

	UpsertResponse(r *Response) (*Response, error)
	GetResponse(userID, financialYear string) (*Response, error)
	ListResponses(userID string) ([]*Response, error)
	DeleteResponse(userID, financialYear string) (bool, error)
}

var _ Store = (*memoryStore)(nil)
