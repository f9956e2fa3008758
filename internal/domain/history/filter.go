package history

import (
	"math"
	"strings"
)

// FilterAll is the sentinel value that disables a category/severity filter.
const FilterAll = "all"

// Query describes the database-view filters. All predicates are ANDed.
type Query struct {
	Text     string // case-insensitive substring over preview, source or id
	Category string // exact match, or FilterAll / empty
	Severity string // exact match, or FilterAll / empty
}

// Filter returns the order-preserving subsequence of records matching q.
// It never mutates its input; repeated calls against an unchanged list
// return identical results.
func Filter(records []*Record, q Query) []*Record {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if text != "" &&
			!strings.Contains(strings.ToLower(r.Preview), text) &&
			!strings.Contains(strings.ToLower(r.Source), text) &&
			!strings.Contains(strings.ToLower(string(r.ID)), text) {
			continue
		}
		if q.Category != "" && q.Category != FilterAll && r.Category != q.Category {
			continue
		}
		if q.Severity != "" && q.Severity != FilterAll && string(r.Severity) != q.Severity {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data       []*Record `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int64     `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

// Paginate slices records into the 1-based page of pageSize entries,
// clipped to the available length.
func Paginate(records []*Record, page, pageSize int) PaginatedResult {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	data := make([]*Record, 0, end-start)
	for _, r := range records[start:end] {
		data = append(data, r.Clone())
	}
	return PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      int64(len(records)),
		TotalPages: int(math.Ceil(float64(len(records)) / float64(pageSize))),
	}
}
