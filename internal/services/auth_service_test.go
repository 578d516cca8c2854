package services

import (
	"errors"
	"testing"
	"time"
)

type authStubStore struct {
	users map[string]*User
}

func newAuthStubStore() *authStubStore {
	return &authStubStore{users: map[string]*User{}}
}

func (s *authStubStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *authStubStore) AddUser(u *User) error {
	if _, ok := s.users[u.Email]; ok {
		return errors.New("duplicate user")
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "token:" + uid, nil
	})
	svc.now = func() time.Time { return time.Unix(0, 0) }
	svc.idGen = func(prefix string, n int) string { return prefix + "1234567" }

	res, err := svc.Register("Aditi", "user@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User == nil || res.User.ID == "" || res.User.Name != "Aditi" {
		t.Fatalf("unexpected user in result: %+v", res.User)
	}
	if res.Token != "token:"+res.User.ID {
		t.Fatalf("unexpected token %q", res.Token)
	}

	if _, err = svc.Register("Aditi", "user@example.com", "Secret123"); err == nil {
		t.Fatalf("expected conflict error on duplicate registration")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}

	loginRes, err := svc.Login("user@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loginRes.Token == "" || loginRes.User.Email != "user@example.com" {
		t.Fatalf("unexpected login result: %+v", loginRes)
	}

	if _, err := svc.Login("user@example.com", "wrong1"); err == nil {
		t.Fatalf("expected error for wrong password")
	}
	if _, err := svc.Login("missing@example.com", "Secret123"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}

func TestAuthValidation(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "tok", nil
	})

	cases := []struct {
		name, email, password, badField string
	}{
		{"", "user@example.com", "Secret123", "name"},
		{"Aditi", "", "Secret123", "email"},
		{"Aditi", "not-an-email", "Secret123", "email"},
		{"Aditi", "user@example.com", "short", "password"},
	}
	for _, c := range cases {
		_, err := svc.Register(c.name, c.email, c.password)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("Register(%q,%q,...): expected validation error, got %v", c.name, c.email, err)
		}
		if se.Fields[c.badField] == "" {
			t.Fatalf("expected reason for field %q, got %v", c.badField, se.Fields)
		}
	}

	if _, err := svc.Login("", ""); err == nil {
		t.Fatalf("expected validation error on login")
	}
}

func TestAuthConflictLeavesExistingUser(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "tok", nil
	})
	if _, err := svc.Register("First", "user@example.com", "Secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	before := *store.users["user@example.com"]
	if _, err := svc.Register("Second", "user@example.com", "Other456"); err == nil {
		t.Fatalf("expected conflict")
	}
	after := *store.users["user@example.com"]
	if before.ID != after.ID || before.Name != after.Name {
		t.Fatalf("existing user row was altered: %+v vs %+v", before, after)
	}
}
