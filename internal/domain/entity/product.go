package entity

import (
	"strings"
	"time"
)

// ApprovalStatus는 상품 승인 상태입니다
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalReject   ApprovalStatus = "reject"
	ApprovalDraft    ApprovalStatus = "draft"
)

// Product는 상품 도메인 엔티티입니다
type Product struct {
	Name            string         `bson:"name"`
	Description     string         `bson:"description"`
	BeforeSalePrice float64        `bson:"before_sale_price"`
	SalePrice       float64        `bson:"sale_price,omitempty"`
	Quantity        int            `bson:"quantity"`
	Images          []string       `bson:"images"`
	ShopID          string         `bson:"shop_id,omitempty"`
	CategoryID      string         `bson:"category_id,omitempty"`
	IsApproved      ApprovalStatus `bson:"is_approved"`
	AllowToSell     bool           `bson:"allow_to_sell"`
	Sold            int            `bson:"sold"`
	DeletedAt       *time.Time     `bson:"deleted_at,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"`
}

// NewProduct는 새로운 상품 엔티티를 생성합니다
func NewProduct(name, description string, beforeSalePrice float64, quantity int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProductName
	}
	if beforeSalePrice < 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	return &Product{
		Name:            name,
		Description:     description,
		BeforeSalePrice: beforeSalePrice,
		Quantity:        quantity,
		Images:          []string{},
		IsApproved:      ApprovalPending,
		AllowToSell:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// EffectivePrice는 판매가가 설정된 경우 판매가를, 아니면 정가를 반환합니다
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.BeforeSalePrice {
		return p.SalePrice
	}
	return p.BeforeSalePrice
}

// IsDeleted는 상품이 soft delete되었는지 확인합니다
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// IsSellable은 상품이 판매 가능한 상태인지 확인합니다
func (p *Product) IsSellable() bool {
	return !p.IsDeleted() && p.AllowToSell && p.IsApproved == ApprovalApproved && p.Quantity > 0
}
