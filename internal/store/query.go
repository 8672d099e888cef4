package store

import (
	"sort"
	"strings"
	"time"

	"github.com/rcliao/theaterlog/internal/model"
)

// SortMode selects the ordering of query results.
type SortMode string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortRating SortMode = "rating"
)

// QueryParams holds the active filter and sort criteria.
type QueryParams struct {
	FilterText string
	FilterTag  string
	SortBy     SortMode
}

// ComputeStatus derives the display status of a review at the given moment.
// It is a pure function of (review, now) and must be recomputed per render,
// never cached on the review.
func ComputeStatus(r model.Review, now time.Time) model.Status {
	if r.Rating > 0 || strings.TrimSpace(r.Body) != "" {
		return model.StatusSeen
	}

	y, m, d := now.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()
	endOfToday := startOfToday + 24*60*60*1000 - 1

	switch {
	case r.Date >= startOfToday && r.Date <= endOfToday:
		return model.StatusFillToday
	case r.Date > endOfToday:
		return model.StatusPlanned
	default:
		return model.StatusPendingPast
	}
}

// Query returns a new ordered view of the given collection. The underlying
// slice is never mutated.
func Query(reviews []model.Review, p QueryParams) []model.Review {
	items := make([]model.Review, len(reviews))
	copy(items, reviews)

	if p.FilterText != "" {
		q := strings.ToLower(p.FilterText)
		kept := items[:0]
		for _, r := range items {
			if matchesText(r, q) {
				kept = append(kept, r)
			}
		}
		items = kept
	}

	if p.FilterTag != "" {
		kept := items[:0]
		for _, r := range items {
			if hasTag(r, p.FilterTag) {
				kept = append(kept, r)
			}
		}
		items = kept
	}

	switch p.SortBy {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	case SortRating:
		// Stable: equal ratings keep their original relative order.
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	}

	return items
}

// Query applies the criteria against the store's collection.
func (s *Store) Query(p QueryParams) []model.Review {
	return Query(s.reviews, p)
}

// matchesText reports whether any searchable field of r contains the
// lower-cased needle q.
func matchesText(r model.Review, q string) bool {
	for _, f := range []string{r.Title, r.Director, r.Location, r.Info, r.Body} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, t := range r.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func hasTag(r model.Review, tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
