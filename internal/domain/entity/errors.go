package entity

import "errors"

var (
	// ErrInvalidEmail은 이메일 형식이 유효하지 않을 때 발생합니다
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword는 비밀번호가 최소 길이를 만족하지 않을 때 발생합니다
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrInvalidProductName은 상품명이 비어있을 때 발생합니다
	ErrInvalidProductName = errors.New("invalid product name")

	// ErrInvalidPrice는 가격이 음수일 때 발생합니다
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidQuantity는 수량이 음수일 때 발생합니다
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	// ErrUserNotFound는 사용자를 찾을 수 없을 때 발생합니다
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound는 상품을 찾을 수 없을 때 발생합니다
	ErrProductNotFound = errors.New("product not found")

	// ErrEmailAlreadyExists는 이미 등록된 이메일일 때 발생합니다
	ErrEmailAlreadyExists = errors.New("email already registered")
)
