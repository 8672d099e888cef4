package store

import (
	"sort"
	"time"

	"github.com/rcliao/theaterlog/internal/model"
)

// Stats summarizes the collection.
type Stats struct {
	Total        int                  `json:"total"`
	ByStatus     map[model.Status]int `json:"by_status"`
	Tags         []TagCount           `json:"tags,omitempty"`
	LastLocation string               `json:"last_location,omitempty"`
}

// TagCount holds the usage count of one tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats computes collection statistics at the given moment.
func (s *Store) Stats(now time.Time) Stats {
	st := Stats{
		Total:        len(s.reviews),
		ByStatus:     make(map[model.Status]int),
		LastLocation: s.lastLocation,
	}

	tagCounts := make(map[string]int)
	for _, r := range s.reviews {
		st.ByStatus[ComputeStatus(r, now)]++
		for _, t := range r.Tags {
			tagCounts[t]++
		}
	}

	for tag, n := range tagCounts {
		st.Tags = append(st.Tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Tag < st.Tags[j].Tag
	})

	return st
}
