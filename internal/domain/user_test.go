package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("John", "Doe", "John@Example.com", "123456")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "john@example.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}

	if user.Role != RoleMember {
		t.Errorf("Expected new users to default to role %q, got %q", RoleMember, user.Role)
	}

	if user.FullName() != "John Doe" {
		t.Errorf("Expected full name %q, got %q", "John Doe", user.FullName())
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Invalid inputs
	cases := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		wantErr   error
	}{
		{"empty first name", "", "Doe", "john@example.com", "123456", ErrEmptyFirstName},
		{"empty last name", "John", "", "john@example.com", "123456", ErrEmptyLastName},
		{"empty email", "John", "Doe", "", "123456", ErrEmptyEmail},
		{"malformed email", "John", "Doe", "not-an-email", "123456", ErrInvalidEmail},
		{"email without domain dot", "John", "Doe", "john@localhost", "123456", ErrInvalidEmail},
		{"short password", "John", "Doe", "john@example.com", "12345", ErrPasswordTooShort},
		{"long password", "John", "Doe", "john@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
		{"empty password", "John", "Doe", "john@example.com", "", ErrEmptyPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.firstName, tc.lastName, tc.email, tc.password)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserValidateHashedPassword(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           RoleMember,
	}

	// A stored user carries only the hash; no plaintext bounds apply.
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidateRole(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john@example.com",
		HashedPassword: "hash",
		Role:           Role("superuser"),
	}

	if err := user.Validate(); err != ErrInvalidRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidRole, err)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleMember.Valid() || !RoleAdministrator.Valid() {
		t.Error("Expected known roles to be valid")
	}
	if Role("").Valid() || Role("admin").Valid() {
		t.Error("Expected unknown roles to be invalid")
	}
}

func TestUserIsAdmin(t *testing.T) {
	member := User{Role: RoleMember}
	admin := User{Role: RoleAdministrator}

	if member.IsAdmin() {
		t.Error("Expected member not to be admin")
	}
	if !admin.IsAdmin() {
		t.Error("Expected administrator to be admin")
	}
}

func TestUserHasBorrowed(t *testing.T) {
	bookID := uuid.New()
	user := User{BorrowedBooks: []uuid.UUID{uuid.New(), bookID}}

	if !user.HasBorrowed(bookID) {
		t.Error("Expected HasBorrowed to report borrowed book")
	}
	if user.HasBorrowed(uuid.New()) {
		t.Error("Expected HasBorrowed to be false for unknown book")
	}
}
