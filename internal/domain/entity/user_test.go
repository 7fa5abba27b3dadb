package entity

import (
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  User@Example.COM ", "alice", "password123")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	if user.Email != "user@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", user.Email)
	}
	if user.HashedPassword == "password123" || user.HashedPassword == "" {
		t.Error("password must be stored hashed")
	}
	if user.Role != RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, RoleUser)
	}
	if user.MemberType != MemberWhite {
		t.Errorf("MemberType = %q, want %q", user.MemberType, MemberWhite)
	}
	if !user.IsActive {
		t.Error("new user must be active")
	}
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", "password123", ErrInvalidEmail},
		{"missing at sign", "not-an-email", "password123", ErrInvalidEmail},
		{"short password", "a@b.com", "1234567", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, "name", tt.password)
			if err != tt.wantErr {
				t.Errorf("NewUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser("a@b.com", "alice", "password123")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	if !user.CheckPassword("password123") {
		t.Error("CheckPassword() = false for correct password")
	}
	if user.CheckPassword("wrong-password") {
		t.Error("CheckPassword() = true for wrong password")
	}
}

func TestMemberType_IsValid(t *testing.T) {
	for _, m := range []MemberType{MemberWhite, MemberGold, MemberPlatinum, MemberDiamond} {
		if !m.IsValid() {
			t.Errorf("IsValid() = false for %q", m)
		}
	}

	for _, m := range []MemberType{"", "DIAMOND2", "gold"} {
		if m.IsValid() {
			t.Errorf("IsValid() = true for %q", m)
		}
	}
}

func TestUser_IsAdmin(t *testing.T) {
	user, _ := NewUser("a@b.com", "alice", "password123")
	if user.IsAdmin() {
		t.Error("new user must not be admin")
	}

	user.Role = RoleAdmin
	if !user.IsAdmin() {
		t.Error("IsAdmin() = false for admin role")
	}
}
