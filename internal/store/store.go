// Package store owns the authoritative in-memory review collection.
//
// The collection is an ordered sequence (insertion order). Every mutation
// persists the full collection through the storage adapter; adapter failures
// are logged and swallowed so the in-memory state stays authoritative for the
// session.
package store

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rcliao/theaterlog/internal/model"
	"github.com/rcliao/theaterlog/internal/storage"
)

// ErrDuplicate is returned by Create when the candidate collides with an
// existing review under the title + calendar-day rule. The collection is not
// mutated in that case.
var ErrDuplicate = errors.New("duplicate review")

// Store holds the review collection for one session.
type Store struct {
	reviews      []model.Review
	lastLocation string
	adapter      storage.Adapter
	log          zerolog.Logger
	entropy      *rand.Rand
}

// New builds a Store on top of the given adapter. A failing or empty adapter
// yields an empty collection; load errors are logged, never propagated.
func New(adapter storage.Adapter, log zerolog.Logger) *Store {
	reviews, err := adapter.Load()
	if err != nil {
		log.Warn().Err(err).Msg("load reviews failed, starting empty")
		reviews = nil
	}
	lastLocation, err := adapter.LastLocation()
	if err != nil {
		log.Warn().Err(err).Msg("load last location failed")
		lastLocation = ""
	}

	return &Store{
		reviews:      reviews,
		lastLocation: lastLocation,
		adapter:      adapter,
		log:          log,
		entropy:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// persist writes the collection through the adapter, best-effort.
func (s *Store) persist() {
	if err := s.adapter.Save(s.reviews); err != nil {
		s.log.Warn().Err(err).Msg("save reviews failed")
	}
}

func (s *Store) persistLastLocation(loc string) {
	s.lastLocation = loc
	if err := s.adapter.SaveLastLocation(loc); err != nil {
		s.log.Warn().Err(err).Msg("save last location failed")
	}
}

// CreateParams holds the fields of a manual entry.
type CreateParams struct {
	Title    string `validate:"required" message:"required:title is required"`
	Director string
	Location string
	Info     string
	Body     string
	Date     int64
	Tags     []string
	Rating   int `validate:"min:0|max:5"`
}

// Validate checks the manual-entry rules.
func (p CreateParams) Validate() error {
	v := validate.Struct(p)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}

// Create validates the candidate, runs duplicate detection and appends the
// new review to the end of the collection. On duplicate it returns
// ErrDuplicate and performs no mutation. A non-empty location updates the
// "last used location" side value.
func (s *Store) Create(p CreateParams) (*model.Review, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if isDuplicate(s.reviews, p.Title, p.Date) {
		return nil, ErrDuplicate
	}

	r := model.Review{
		ID:       s.newID(),
		Title:    p.Title,
		Director: p.Director,
		Location: p.Location,
		Info:     p.Info,
		Body:     p.Body,
		Date:     p.Date,
		Tags:     p.Tags,
		Rating:   p.Rating,
	}
	s.reviews = append(s.reviews, r)
	if p.Location != "" {
		s.persistLastLocation(p.Location)
	}
	s.persist()
	return &r, nil
}

// UpdateParams carries the fields to replace on an existing review. Nil
// fields are left untouched; set fields replace the stored value whole.
type UpdateParams struct {
	Title    *string
	Director *string
	Location *string
	Info     *string
	Body     *string
	Date     *int64
	Tags     *[]string
	Rating   *int
}

// Update replaces the given fields on the review matching id. It is a no-op
// when the id is unknown.
func (s *Store) Update(id string, p UpdateParams) error {
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > model.MaxRating) {
		return fmt.Errorf("rating must be between 0 and %d", model.MaxRating)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("title is required")
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	r := &s.reviews[idx]
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Director != nil {
		r.Director = *p.Director
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Info != nil {
		r.Info = *p.Info
	}
	if p.Body != nil {
		r.Body = *p.Body
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}

	if p.Location != nil && *p.Location != "" {
		s.persistLastLocation(*p.Location)
	}
	s.persist()
	return nil
}

// Delete removes the review matching id. No-op when absent.
func (s *Store) Delete(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.reviews = append(s.reviews[:idx], s.reviews[idx+1:]...)
	s.persist()
}

// Get returns a copy of the review matching id, or nil.
func (s *Store) Get(id string) *model.Review {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	r := s.reviews[idx]
	return &r
}

// Reviews returns a copy of the collection in insertion order.
func (s *Store) Reviews() []model.Review {
	out := make([]model.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Len returns the number of reviews in the collection.
func (s *Store) Len() int {
	return len(s.reviews)
}

// LastLocation returns the remembered "last used location" value.
func (s *Store) LastLocation() string {
	return s.lastLocation
}

func (s *Store) indexOf(id string) int {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			return i
		}
	}
	return -1
}

// isDuplicate reports whether a candidate with the given title and date
// collides with an existing review: equal titles after trimming and case
// folding, and either both dateless or both on the same local calendar day.
// Candidates with an empty title never collide.
func isDuplicate(existing []model.Review, title string, date int64) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	for _, r := range existing {
		if strings.ToLower(strings.TrimSpace(r.Title)) != t {
			continue
		}
		if r.Date == 0 && date == 0 {
			return true
		}
		if r.Date != 0 && date != 0 && sameCalendarDay(r.Date, date) {
			return true
		}
	}
	return false
}

func sameCalendarDay(a, b int64) bool {
	ta := time.UnixMilli(a).Local()
	tb := time.UnixMilli(b).Local()
	ya, ma, da := ta.Date()
	yb, mb, db := tb.Date()
	return ya == yb && ma == mb && da == db
}
