package store

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rcliao/theaterlog/internal/fetch"
	"github.com/rcliao/theaterlog/internal/model"
)

// PlaceholderTitle is used for imported items without a usable title.
const PlaceholderTitle = "Onbekende voorstelling"

// Candidate is the loose shape of an external import item. Different sources
// spell the same field differently; normalization resolves the fallbacks.
type Candidate struct {
	Title    string      `json:"title"`
	Name     string      `json:"name"`
	Director string      `json:"director"`
	Artist   string      `json:"artiest"`
	Location string      `json:"location"`
	Theatre  string      `json:"theatre"`
	Info     string      `json:"info"`
	Body     string      `json:"body"`
	Date     LooseDate   `json:"date"`
	Tags     LooseTags   `json:"tags"`
	Rating   LooseRating `json:"rating"`
}

// LooseDate accepts an epoch-milliseconds number or a parseable date string.
// Millis stays 0 when the value is absent or unparseable.
type LooseDate struct {
	Millis int64
}

func (d *LooseDate) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		d.Millis = int64(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	d.Millis = ParseDateString(str, time.Now())
	return nil
}

// LooseTags accepts an array of strings or a comma-separated string.
type LooseTags []string

func (t *LooseTags) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		*t = arr
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*t = SplitTags(joined)
	return nil
}

// LooseRating accepts a number; any other shape counts as unrated.
type LooseRating int

func (r *LooseRating) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*r = 0
		return nil
	}
	*r = LooseRating(n)
	return nil
}

// SplitTags splits a comma-separated tag string into trimmed non-empty tokens.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

var dutchMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mrt": time.March,
	"apr": time.April, "mei": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"okt": time.October, "nov": time.November, "dec": time.December,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006",
	"2-1-2006",
	"02-01-06",
	"2-1-06",
}

// ParseDateString parses the date spellings that show up in imports and
// scraped listings: ISO dates, dd-mm-yyyy forms and Dutch "12 okt 2024"
// phrases. It returns epoch milliseconds, or 0 when nothing matches.
func ParseDateString(s string, now time.Time) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli()
		}
	}

	// "12 okt" / "12 okt 2024" with an optional month suffix ("oktober").
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) >= 2 {
		day, err := strconv.Atoi(fields[0])
		if err != nil || day < 1 || day > 31 {
			return 0
		}
		abbr := fields[1]
		if len(abbr) > 3 {
			abbr = abbr[:3]
		}
		month, ok := dutchMonths[abbr]
		if !ok {
			return 0
		}
		year := now.Year()
		if len(fields) >= 3 {
			if y, err := strconv.Atoi(fields[2]); err == nil && y > 0 {
				if y < 100 {
					y += 2000
				}
				year = y
			}
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.Local).UnixMilli()
	}

	return 0
}

// normalize turns a loose candidate into a strict review (without id).
// Bulk-imported items always get a concrete date; a wholly absent or
// unparseable date falls back to now.
func (c Candidate) normalize(now time.Time) model.Review {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = strings.TrimSpace(c.Name)
	}
	if title == "" {
		title = PlaceholderTitle
	}

	director := c.Director
	if director == "" {
		director = c.Artist
	}
	location := c.Location
	if location == "" {
		location = c.Theatre
	}
	info := c.Info
	if info == "" {
		info = c.Body
	}

	date := c.Date.Millis
	if date == 0 {
		date = now.UnixMilli()
	}

	rating := int(c.Rating)
	if rating < 0 {
		rating = 0
	}
	if rating > model.MaxRating {
		rating = model.MaxRating
	}

	return model.Review{
		Title:    title,
		Director: director,
		Location: location,
		Info:     info,
		Body:     c.Body,
		Date:     date,
		Tags:     []string(c.Tags),
		Rating:   rating,
	}
}

// CandidateFromListing maps a scraped listing onto an import candidate. The
// listing body becomes the info field (falling back to the search query); the
// raw date text is normalized here.
func CandidateFromListing(l fetch.Listing, query string) Candidate {
	info := l.Body
	if info == "" {
		info = query
	}
	return Candidate{
		Title: l.Title,
		Info:  info,
		Date:  LooseDate{Millis: ParseDateString(l.Date, time.Now())},
		Tags:  LooseTags(l.Tags),
	}
}

// ImportResult reports the outcome of a bulk merge.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// DecodeCandidates parses a JSON import payload: either a bare array of
// candidates or an envelope object carrying a "reviews" array. Items are kept
// raw so one malformed element skips, not aborts, the batch.
func DecodeCandidates(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Reviews []json.RawMessage `json:"reviews"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Reviews != nil {
		return envelope.Reviews, nil
	}
	return nil, errors.New("expected a JSON array of reviews")
}

// ImportRaw merges raw candidate objects into the collection. Malformed items
// count as skipped. Persists only when something was added.
func (s *Store) ImportRaw(items []json.RawMessage) ImportResult {
	candidates := make([]Candidate, 0, len(items))
	var malformed int
	for _, raw := range items {
		var c Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			malformed++
			continue
		}
		candidates = append(candidates, c)
	}
	res := s.ImportCandidates(candidates)
	res.Skipped += malformed
	return res
}

// ImportCandidates merges candidates into the collection with the same
// duplicate rule as single create. A candidate added earlier in the batch is
// a collision target for later ones. Duplicates are counted as skipped; the
// batch never aborts.
func (s *Store) ImportCandidates(candidates []Candidate) ImportResult {
	now := time.Now()
	var res ImportResult

	for _, c := range candidates {
		// Dedup keys on the title field only; the name/placeholder
		// fallback applies after the check.
		if isDuplicate(s.reviews, c.Title, c.Date.Millis) {
			res.Skipped++
			continue
		}

		r := c.normalize(now)
		r.ID = s.newID()
		s.reviews = append(s.reviews, r)
		if r.Location != "" {
			s.persistLastLocation(r.Location)
		}
		res.Added++
	}

	if res.Added > 0 {
		s.persist()
	}
	return res
}
