package validation

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/skybi/schools-server/internal/api/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	limitRangeMessage  = "limit query parameter must be at least 1 and no greater than 100"
	offsetRangeMessage = "offset query parameter must be at least 0"
)

func TestQueryNumber(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		key     string
		min     int64
		max     int64
		want    int64
		kind    schema.Kind
		message string
	}{
		{name: "default limit", query: "", key: "limit", min: 1, max: 100, want: 100},
		{name: "valid limit", query: "limit=10", key: "limit", min: 1, max: 100, want: 10},
		{name: "upper bound", query: "limit=100", key: "limit", min: 1, max: 100, want: 100},
		{name: "zero limit", query: "limit=0", key: "limit", min: 1, max: 100, kind: schema.KindInvalidRange, message: limitRangeMessage},
		{name: "negative limit", query: "limit=-1", key: "limit", min: 1, max: 100, kind: schema.KindInvalidRange, message: limitRangeMessage},
		{name: "limit too large", query: "limit=1000", key: "limit", min: 1, max: 100, kind: schema.KindInvalidRange, message: limitRangeMessage},
		{name: "limit overflow", query: "limit=99999999999999999999", key: "limit", min: 1, max: 100, kind: schema.KindInvalidRange, message: limitRangeMessage},
		{name: "empty limit", query: "limit=", key: "limit", min: 1, max: 100, kind: schema.KindInvalidFieldType, message: "limit query parameter must be a number"},
		{name: "empty offset", query: "offset=&limit=5", key: "offset", min: 0, max: math.MaxInt64, kind: schema.KindInvalidFieldType, message: "offset query parameter must be a number"},
		{name: "limit not a number", query: "limit=ten", key: "limit", min: 1, max: 100, kind: schema.KindInvalidFieldType, message: "limit query parameter must be a number"},
		{name: "default offset", query: "limit=5", key: "offset", min: 0, max: math.MaxInt64, want: 0},
		{name: "valid offset", query: "offset=20", key: "offset", min: 0, max: math.MaxInt64, want: 20},
		{name: "negative offset", query: "offset=-1", key: "offset", min: 0, max: math.MaxInt64, kind: schema.KindInvalidRange, message: offsetRangeMessage},
		{name: "negative offset overflow", query: "offset=-99999999999999999999", key: "offset", min: 0, max: math.MaxInt64, kind: schema.KindInvalidRange, message: offsetRangeMessage},
		{name: "positive offset overflow", query: "offset=99999999999999999999", key: "offset", min: 0, max: math.MaxInt64, kind: schema.KindInvalidFieldType, message: "offset query parameter must be a number"},
		{name: "offset float", query: "offset=1.5", key: "offset", min: 0, max: math.MaxInt64, kind: schema.KindInvalidFieldType, message: "offset query parameter must be a number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/schools?"+tc.query, nil)
			def := int64(0)
			if tc.key == "limit" {
				def = 100
			}

			got, err := QueryNumber(request, tc.key, false, def, tc.min, tc.max)
			if tc.message == "" {
				require.Nil(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tc.kind, err.Kind)
			assert.Equal(t, tc.message, err.Message)
			assert.Equal(t, 400, err.Status())
		})
	}
}

func TestQueryNumberRequired(t *testing.T) {
	request := httptest.NewRequest("GET", "/schools", nil)
	_, err := QueryNumber(request, "page", true, 0, 0, 10)
	require.NotNil(t, err)
	assert.Equal(t, "page query parameter is required", err.Message)
}

func TestQueryNumberRequiredEmpty(t *testing.T) {
	request := httptest.NewRequest("GET", "/schools?page=", nil)
	_, err := QueryNumber(request, "page", true, 0, 0, 10)
	require.NotNil(t, err)
	assert.Equal(t, "page query parameter must be a number", err.Message)
}
