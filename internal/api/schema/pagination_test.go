package schema

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLink(t *testing.T, link string) (string, url.Values) {
	t.Helper()
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Len(t, query, 2, "links must carry exactly offset and limit")
	parsed.RawQuery = ""
	return parsed.String(), query
}

func assertPageLink(t *testing.T, link string, offset, limit string) {
	t.Helper()
	require.NotEmpty(t, link)
	base, query := parseLink(t, link)
	assert.Equal(t, "http://localhost:8080/schools", base)
	assert.Equal(t, offset, query.Get("offset"))
	assert.Equal(t, limit, query.Get("limit"))
}

func TestPaginationLinks(t *testing.T) {
	base, err := url.Parse("http://localhost:8080/schools")
	require.NoError(t, err)

	tests := []struct {
		name       string
		pagination Pagination
		next       string
		prev       string
		last       string
	}{
		{name: "second page", pagination: Pagination{Offset: 10, Limit: 10, Total: 135}, next: "20", prev: "0", last: "130"},
		{name: "first page", pagination: Pagination{Offset: 0, Limit: 100, Total: 250}, next: "100", last: "200"},
		{name: "total is multiple of limit", pagination: Pagination{Offset: 20, Limit: 10, Total: 30}, next: "30", prev: "10", last: "30"},
		{name: "offset below limit", pagination: Pagination{Offset: 5, Limit: 10, Total: 30}, next: "15", last: "30"},
		{name: "beyond the end", pagination: Pagination{Offset: 500, Limit: 50, Total: 30}, next: "550", prev: "450", last: "0"},
		{name: "empty collection", pagination: Pagination{Offset: 0, Limit: 10, Total: 0}, next: "10", last: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			links := tc.pagination.Links(base)
			lim := strconv.FormatUint(tc.pagination.Limit, 10)

			assertPageLink(t, links.First, "0", lim)
			assertPageLink(t, links.Next, tc.next, lim)
			assertPageLink(t, links.Last, tc.last, lim)
			if tc.prev == "" {
				assert.Empty(t, links.Prev)
			} else {
				assertPageLink(t, links.Prev, tc.prev, lim)
			}
		})
	}
}

func TestPaginationLinksIgnoreBaseQuery(t *testing.T) {
	base, err := url.Parse("https://schools.example.com/schools?foo=bar#top")
	require.NoError(t, err)

	links := Pagination{Offset: 0, Limit: 10, Total: 5}.Links(base)
	assert.Equal(t, "https://schools.example.com/schools?limit=10&offset=0", links.First)
	assert.Equal(t, "https://schools.example.com/schools?foo=bar#top", base.String(), "the base URL must not be modified")
}

func TestPaginationZeroLimit(t *testing.T) {
	pagination := Pagination{Offset: 10, Limit: 0, Total: 5}
	assert.Zero(t, pagination.LastOffset())
	_, ok := pagination.PrevOffset()
	assert.False(t, ok)
}

func TestPaginationMetadata(t *testing.T) {
	assert.Equal(t, &CollectionMetadata{Total: 42}, Pagination{Total: 42}.Metadata())
}

func TestNextOffsetIsCapped(t *testing.T) {
	tests := []struct {
		name       string
		pagination Pagination
		want       uint64
	}{
		{name: "regular", pagination: Pagination{Offset: 10, Limit: 10}, want: 20},
		{name: "reaches the maximum", pagination: Pagination{Offset: MaxOffset - 10, Limit: 10}, want: MaxOffset},
		{name: "exceeds the maximum", pagination: Pagination{Offset: MaxOffset - 5, Limit: 100}, want: MaxOffset},
		{name: "at the maximum", pagination: Pagination{Offset: MaxOffset, Limit: 100}, want: MaxOffset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pagination.NextOffset())
		})
	}
}
