package schema

import (
	"math"
	"net/url"
	"strconv"
)

// MaxOffset is the largest offset a page link may carry
const MaxOffset = math.MaxInt64

// CollectionMetadata represents the metadata present in a paginated collection response
type CollectionMetadata struct {
	Total uint64 `json:"total"`
}

// CollectionLinks represents the navigation links present in a paginated collection response.
// Prev is omitted on pages that start before the collection's second page.
type CollectionLinks struct {
	Next  string `json:"next"`
	Prev  string `json:"prev,omitempty"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// Pagination describes an offset/limit window over a collection of a specific total size
type Pagination struct {
	Offset uint64
	Limit  uint64
	Total  uint64
}

// LastOffset returns the offset of the last page, which is the largest multiple of the limit not exceeding the total.
// If the total is a multiple of the limit, the last page is empty.
func (pagination Pagination) LastOffset() uint64 {
	if pagination.Limit == 0 {
		return 0
	}
	return pagination.Total / pagination.Limit * pagination.Limit
}

// NextOffset returns the offset of the page following the current one, regardless of whether it holds any entries.
// The result never exceeds MaxOffset.
func (pagination Pagination) NextOffset() uint64 {
	if pagination.Offset >= MaxOffset || pagination.Limit > MaxOffset-pagination.Offset {
		return MaxOffset
	}
	return pagination.Offset + pagination.Limit
}

// PrevOffset returns the offset of the page preceding the current one.
// The boolean is false if the current page starts before offset+limit would reach back a full page.
func (pagination Pagination) PrevOffset() (uint64, bool) {
	if pagination.Limit == 0 || pagination.Offset < pagination.Limit {
		return 0, false
	}
	return pagination.Offset - pagination.Limit, true
}

// Metadata builds the collection metadata
func (pagination Pagination) Metadata() *CollectionMetadata {
	return &CollectionMetadata{
		Total: pagination.Total,
	}
}

// Links builds the navigation links of the current page.
// Every link points to base and carries exactly the offset and limit query parameters.
func (pagination Pagination) Links(base *url.URL) *CollectionLinks {
	links := &CollectionLinks{
		Next:  buildPageLink(base, pagination.NextOffset(), pagination.Limit),
		First: buildPageLink(base, 0, pagination.Limit),
		Last:  buildPageLink(base, pagination.LastOffset(), pagination.Limit),
	}
	if prev, ok := pagination.PrevOffset(); ok {
		links.Prev = buildPageLink(base, prev, pagination.Limit)
	}
	return links
}

func buildPageLink(base *url.URL, offset, limit uint64) string {
	link := *base
	query := url.Values{}
	query.Set("offset", strconv.FormatUint(offset, 10))
	query.Set("limit", strconv.FormatUint(limit, 10))
	link.RawQuery = query.Encode()
	link.Fragment = ""
	return link.String()
}
