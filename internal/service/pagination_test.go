package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		filter         store.ListFilter
		total          int
		wantTotalPages int
	}{
		{"empty result set", store.ListFilter{Page: 1, Limit: 10}, 0, 0},
		{"exact multiple", store.ListFilter{Page: 1, Limit: 10}, 30, 3},
		{"partial last page", store.ListFilter{Page: 2, Limit: 10}, 31, 4},
		{"single item", store.ListFilter{Page: 1, Limit: 10}, 1, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := service.NewPagination(tc.filter, tc.total)
			assert.Equal(t, tc.filter.Page, p.Page)
			assert.Equal(t, tc.filter.Limit, p.Limit)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.wantTotalPages, p.TotalPages)
		})
	}
}
