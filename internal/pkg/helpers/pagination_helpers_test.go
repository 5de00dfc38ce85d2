package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 20, 40, 20},
		{"zero page coerced", 0, 20, 0, 20},
		{"negative page coerced", -5, 10, 0, 10},
		{"zero limit uses default", 2, 0, uint64(DefaultPageSize), DefaultPageSize},
		{"oversized limit uses default", 1, MaxPageSize + 1, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int
		limit          int
		wantTotalPages int
	}{
		{"exact division", 100, 1, 10, 10},
		{"partial last page", 101, 1, 10, 11},
		{"no items", 0, 1, 10, 0},
		{"single item", 1, 1, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.total, tt.page, tt.limit)
			if info.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPages)
			}
			if info.Total != tt.total {
				t.Errorf("Total = %d, want %d", info.Total, tt.total)
			}
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 50},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"invalid page", "page=abc&limit=25", 1, 25},
		{"negative page", "page=-1", 1, 50},
		{"limit above maximum", "limit=500", 1, 50},
		{"zero limit", "limit=0", 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/rooms?"+tt.query, nil)

			page, limit := ParsePaginationParams(c, 50)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("ParsePaginationParams(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
