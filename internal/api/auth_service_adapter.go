package api

import (
	"errors"

	"github.com/aditigupta-200/ESG-Questionnaire/internal/services"
)

type authStoreAdapter struct {
	store Store
}

func newAuthStoreAdapter(store Store) services.AuthStore {
	return &authStoreAdapter{store: store}
}

func (a *authStoreAdapter) FindUserByEmail(email string) (*services.User, error) {
	u, err := a.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return convertAPIUser(u), nil
}

func (a *authStoreAdapter) AddUser(u *services.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	if err := a.store.AddUser(convertServiceUser(u)); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return services.NewConflictError("email already registered")
		}
		return err
	}
	return nil
}

func convertAPIUser(u *User) *services.User {
	if u == nil {
		return nil
	}
	return &services.User{ID: u.ID, Name: u.Name, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt}
}

func convertServiceUser(u *services.User) *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Name: u.Name, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt}
}

var _ services.AuthStore = (*authStoreAdapter)(nil)
