package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parceldesk/parceldesk-api/internal/store"
)

func TestListFilterNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        store.ListFilter
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", store.ListFilter{}, store.DefaultPage, store.DefaultLimit},
		{"negative values get defaults", store.ListFilter{Page: -3, Limit: -1}, store.DefaultPage, store.DefaultLimit},
		{"limit clamped to max", store.ListFilter{Page: 2, Limit: 5000}, 2, store.MaxLimit},
		{"valid values pass through", store.ListFilter{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.in.Normalize()
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
			assert.Equal(t, tc.in.Search, got.Search)
		})
	}
}

func TestListFilterOffset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, store.ListFilter{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 30, store.ListFilter{Page: 4, Limit: 10}.Offset())
}
