package entity

import (
	"testing"
	"time"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("keyboard", "mechanical", 100, 5)
	if err != nil {
		t.Fatalf("NewProduct() error = %v", err)
	}

	if product.IsApproved != ApprovalPending {
		t.Errorf("IsApproved = %q, want %q", product.IsApproved, ApprovalPending)
	}
	if !product.AllowToSell {
		t.Error("new product must allow selling")
	}
	if product.Images == nil {
		t.Error("Images must be initialized")
	}
	if product.IsDeleted() {
		t.Error("new product must not be deleted")
	}
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name     string
		prodName string
		price    float64
		quantity int
		wantErr  error
	}{
		{"blank name", "   ", 100, 1, ErrInvalidProductName},
		{"negative price", "keyboard", -1, 1, ErrInvalidPrice},
		{"negative quantity", "keyboard", 100, -1, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.prodName, "", tt.price, tt.quantity)
			if err != tt.wantErr {
				t.Errorf("NewProduct() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name   string
		before float64
		sale   float64
		want   float64
	}{
		{"sale price applied", 100, 80, 80},
		{"no sale price", 100, 0, 100},
		{"sale above before", 100, 120, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{BeforeSalePrice: tt.before, SalePrice: tt.sale}
			if got := p.EffectivePrice(); got != tt.want {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_IsSellable(t *testing.T) {
	now := time.Now()

	sellable := &Product{Quantity: 1, AllowToSell: true, IsApproved: ApprovalApproved}
	if !sellable.IsSellable() {
		t.Error("IsSellable() = false for approved in-stock product")
	}

	tests := []struct {
		name    string
		product *Product
	}{
		{"deleted", &Product{Quantity: 1, AllowToSell: true, IsApproved: ApprovalApproved, DeletedAt: &now}},
		{"not approved", &Product{Quantity: 1, AllowToSell: true, IsApproved: ApprovalPending}},
		{"selling disabled", &Product{Quantity: 1, AllowToSell: false, IsApproved: ApprovalApproved}},
		{"out of stock", &Product{Quantity: 0, AllowToSell: true, IsApproved: ApprovalApproved}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.product.IsSellable() {
				t.Error("IsSellable() = true, want false")
			}
		})
	}
}
