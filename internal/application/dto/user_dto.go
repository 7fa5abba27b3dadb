package dto

// UpdateUserRequest는 사용자 수정 요청입니다
// nil 필드는 변경하지 않습니다
type UpdateUserRequest struct {
	UserName    *string `json:"userName"`
	Avatar      *string `json:"avatar"`
	PhoneNumber *string `json:"phoneNumber"`
	MemberType  *string `json:"member_type"`
	IsActive    *bool   `json:"is_active"`
}

// PageQuery는 목록 조회의 페이지 질의입니다
type PageQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}
