package dto

// CreateProductRequest는 상품 등록 요청입니다
type CreateProductRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	BeforeSalePrice float64  `json:"before_sale_price"`
	SalePrice       float64  `json:"sale_price" binding:"required"`
	Quantity        int      `json:"quantity"`
	Images          []string `json:"images"`
	ShopID          string   `json:"shop_id"`
	CategoryID      string   `json:"category_id"`
}

// UpdateProductRequest는 상품 수정 요청입니다
// nil 필드는 변경하지 않습니다
type UpdateProductRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	BeforeSalePrice *float64  `json:"before_sale_price"`
	SalePrice       *float64  `json:"sale_price"`
	Quantity        *int      `json:"quantity"`
	Images          *[]string `json:"images"`
	CategoryID      *string   `json:"category_id"`
	IsApproved      *string   `json:"is_approved"`
	AllowToSell     *bool     `json:"allow_to_sell"`
}

// ProductListQuery는 상품 목록 조회 질의입니다
type ProductListQuery struct {
	Page       int    `form:"page,default=1"`
	Size       int    `form:"size,default=20"`
	CategoryID string `form:"category_id"`
	ShopID     string `form:"shop_id"`
	Sellable   bool   `form:"sellable"`
}

// SearchQuery는 상품 검색 질의입니다
type SearchQuery struct {
	Query string `form:"q" binding:"required"`
	Page  int    `form:"page,default=1"`
	Size  int    `form:"size,default=20"`
}
