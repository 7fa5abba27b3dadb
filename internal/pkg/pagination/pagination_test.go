package pagination

import (
	"testing"

	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
)

func TestPaginator_Directive(t *testing.T) {
	p := New(100)

	tests := []struct {
		name      string
		req       Request
		wantSkip  int64
		wantLimit int64
		wantErr   bool
	}{
		{
			name:      "first page",
			req:       Request{Page: 1, Size: 20},
			wantSkip:  0,
			wantLimit: 20,
		},
		{
			name:      "third page",
			req:       Request{Page: 3, Size: 20},
			wantSkip:  40,
			wantLimit: 20,
		},
		{
			name:      "max size allowed",
			req:       Request{Page: 1, Size: 100},
			wantSkip:  0,
			wantLimit: 100,
		},
		{
			name:    "page zero",
			req:     Request{Page: 0, Size: 20},
			wantErr: true,
		},
		{
			name:    "negative page",
			req:     Request{Page: -1, Size: 20},
			wantErr: true,
		},
		{
			name:    "size zero",
			req:     Request{Page: 1, Size: 0},
			wantErr: true,
		},
		{
			name:    "size over max",
			req:     Request{Page: 1, Size: 101},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := p.Directive(tt.req)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Directive(%+v) expected error but got nil", tt.req)
					return
				}
				if !apperrors.Is(err, apperrors.ErrCodeInvalidPage) {
					t.Errorf("error code = %v, want INVALID_PAGE", apperrors.GetCode(err))
				}
				return
			}

			if err != nil {
				t.Errorf("Directive(%+v) unexpected error: %v", tt.req, err)
				return
			}
			if d.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", d.Skip, tt.wantSkip)
			}
			if d.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", d.Limit, tt.wantLimit)
			}
		})
	}
}

func TestPaginator_NeverClamps(t *testing.T) {
	p := New(50)

	// 범위를 벗어난 요청은 보정되지 않고 실패해야 합니다
	if _, err := p.Directive(Request{Page: 1, Size: 51}); err == nil {
		t.Error("size above max must fail, not clamp")
	}
	if _, err := p.Directive(Request{Page: 0, Size: 10}); err == nil {
		t.Error("page below 1 must fail, not clamp")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name           string
		items          []string
		total          int64
		req            Request
		wantTotalPages int64
		wantItemCount  int
	}{
		{
			name:           "empty dataset",
			items:          []string{},
			total:          0,
			req:            Request{Page: 1, Size: 20},
			wantTotalPages: 0,
			wantItemCount:  0,
		},
		{
			name:           "last partial page",
			items:          []string{"a", "b", "c", "d", "e"},
			total:          45,
			req:            Request{Page: 3, Size: 20},
			wantTotalPages: 3,
			wantItemCount:  5,
		},
		{
			name:           "exact multiple",
			items:          []string{"a", "b"},
			total:          4,
			req:            Request{Page: 2, Size: 2},
			wantTotalPages: 2,
			wantItemCount:  2,
		},
		{
			name:           "page beyond range returns empty items without error",
			items:          []string{},
			total:          5,
			req:            Request{Page: 100, Size: 20},
			wantTotalPages: 1,
			wantItemCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.items, tt.total, tt.req)

			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if len(result.Items) != tt.wantItemCount {
				t.Errorf("len(Items) = %d, want %d", len(result.Items), tt.wantItemCount)
			}
			if result.Total != tt.total {
				t.Errorf("Total = %d, want %d", result.Total, tt.total)
			}
			if result.Page != tt.req.Page || result.Size != tt.req.Size {
				t.Errorf("Page/Size = %d/%d, want %d/%d", result.Page, result.Size, tt.req.Page, tt.req.Size)
			}
		})
	}
}

func TestWrap_NilItems(t *testing.T) {
	result := Wrap[string](nil, 0, Request{Page: 1, Size: 10})

	if result.Items == nil {
		t.Error("Items must be an empty slice, not nil")
	}
	if result.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", result.TotalPages)
	}
}

func TestWrap_InvariantViolation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Wrap() must panic when items exceed the requested size")
		}
	}()

	Wrap([]int{1, 2, 3}, 3, Request{Page: 1, Size: 2})
}
