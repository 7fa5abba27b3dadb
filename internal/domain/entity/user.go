package entity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role은 사용자 권한 역할입니다
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// MemberType은 회원 등급입니다
type MemberType string

const (
	MemberWhite    MemberType = "WHITE"
	MemberGold     MemberType = "GOLD"
	MemberPlatinum MemberType = "PLATINUM"
	MemberDiamond  MemberType = "DIAMOND"
)

// IsValid는 알려진 회원 등급인지 확인합니다
func (m MemberType) IsValid() bool {
	switch m {
	case MemberWhite, MemberGold, MemberPlatinum, MemberDiamond:
		return true
	}
	return false
}

// User는 사용자 도메인 엔티티입니다
type User struct {
	Email          string     `bson:"email"`
	UserName       string     `bson:"userName"`
	HashedPassword string     `bson:"hashed_password"`
	Role           Role       `bson:"type_role"`
	MemberType     MemberType `bson:"member_type"`
	IsActive       bool       `bson:"is_active"`
	IsVerified     bool       `bson:"isVerified"`
	Avatar         string     `bson:"avatar,omitempty"`
	PhoneNumber    string     `bson:"phoneNumber,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt"`
}

// NewUser는 새로운 사용자 엔티티를 생성합니다.
// 비밀번호는 bcrypt로 해싱되며 평문은 보관하지 않습니다.
func NewUser(email, userName, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		Email:          email,
		UserName:       userName,
		HashedPassword: string(hashed),
		Role:           RoleUser,
		MemberType:     MemberWhite,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CheckPassword는 평문 비밀번호가 저장된 해시와 일치하는지 확인합니다
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// IsAdmin은 사용자가 관리자인지 확인합니다
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
