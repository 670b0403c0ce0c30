package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

func TestQueryParams_Request(t *testing.T) {
	minDays := 5
	params := QueryParams{
		From:    "2024-03-01",
		To:      "2024-03-31",
		Sort:    " revenue ",
		Dir:     "DESC",
		Query:   "acme",
		Fields:  []string{"name,region", " ", "orders"},
		Period:  "Weekly",
		MinDays: &minDays,
	}

	req, err := params.Request(3)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), req.Range.From)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), req.Range.To)
	assert.Equal(t, "revenue", req.View.SortKey)
	assert.Equal(t, domain.SortDescending, req.View.Direction)
	assert.Equal(t, "acme", req.View.Query)
	assert.Equal(t, []string{"name", "region", "orders"}, req.View.SearchFields)
	assert.Equal(t, domain.PeriodWeekly, req.Period)
	assert.Equal(t, 5, req.MinDays)
}

func TestQueryParams_Request_Defaults(t *testing.T) {
	req, err := QueryParams{}.Request(3)
	require.NoError(t, err)

	assert.True(t, req.Range.From.IsZero())
	assert.True(t, req.Range.To.IsZero())
	assert.Empty(t, req.View.SortKey)
	assert.Empty(t, req.View.SearchFields)
	assert.Equal(t, 3, req.MinDays)
}

func TestQueryParams_Request_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params QueryParams
		errMsg string
	}{
		{"Bad From", QueryParams{From: "03/01/2024"}, "invalid from date"},
		{"Bad To", QueryParams{To: "yesterday"}, "invalid to date"},
		{"Reversed Range", QueryParams{From: "2024-03-31", To: "2024-03-01"}, "must not be before start"},
		{"Bad Direction", QueryParams{Dir: "up"}, "sort direction must be asc or desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.Request(3)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
