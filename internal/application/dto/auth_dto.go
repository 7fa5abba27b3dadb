package dto

// RegisterRequest는 회원가입 요청입니다
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserName    string `json:"userName" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginRequest는 로그인 요청입니다
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse는 토큰 발급 응답입니다
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterResponse는 회원가입 응답입니다
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
