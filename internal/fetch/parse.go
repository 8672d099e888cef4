package fetch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Listing is one scraped show entry, pre-normalization. Date holds the raw
// matched text; turning it into an epoch happens in the import mapping.
type Listing struct {
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// DefaultBlacklist returns the navigation and menu terms that show up as
// heading lines on listing pages but are never show titles.
func DefaultBlacklist() []string {
	return []string{
		"inloggen", "zakelijk", "account", "cookies", "privacy", "nieuwsbrief", "vrijwilligers",
		"login", "theater.nl", "klantenservice", "veelgestelde vragen", "voorstellingen",
		"theaters", "poppodia", "concerten", "festivals", "programma", "genres", "musical",
		"cabaret", "dance", "cultuur", "kindervoorstelling", "schoolvoorstelling", "home",
	}
}

var (
	headingTitle = regexp.MustCompile(`^(?:###|##|#)\s+(?:\[(.*?)\]|([^\[].*))$`)
	boldTitle    = regexp.MustCompile(`^\*\*(.*?)\*\*$`)
	wordDate     = regexp.MustCompile(`(?i)(\d{1,2}\s+(?:jan|feb|mrt|apr|mei|jun|jul|aug|sep|okt|nov|dec)[a-z]*\s*\d{0,4})`)
	numericDate  = regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})`)
)

// ParseListings scans the retrieved page text line by line with one active
// candidate accumulator. A valid title line flushes the previous candidate
// and starts a new one; the first matching date line and the first plausible
// snippet line fill the open candidate. Results are deduplicated by
// case-folded title (first occurrence wins) and capped at maxResults.
func ParseListings(text string, blacklist []string, maxResults int) []Listing {
	var items []Listing
	var current *Listing

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if title, ok := matchTitle(line); ok {
			if validTitle(title, blacklist) {
				if current != nil && current.Title != "" {
					items = append(items, *current)
				}
				current = &Listing{Title: title, Tags: []string{}}
				continue
			}
			// Invalid titles fall through: the line may still carry a
			// date or snippet for the open candidate.
		}

		if current != nil && current.Date == "" {
			if m := wordDate.FindStringSubmatch(line); m != nil {
				current.Date = m[1]
				continue
			}
			if m := numericDate.FindStringSubmatch(line); m != nil {
				current.Date = m[1]
				continue
			}
		}

		if current != nil && current.Body == "" {
			n := utf8.RuneCountInString(line)
			if n > 20 && n < 200 && !strings.HasPrefix(line, "#") {
				current.Body = line
			}
		}
	}
	if current != nil && current.Title != "" {
		items = append(items, *current)
	}

	seen := make(map[string]bool)
	out := items[:0]
	for _, it := range items {
		key := strings.ToLower(it.Title)
		if seen[key] || utf8.RuneCountInString(it.Title) < 4 {
			continue
		}
		seen[key] = true
		out = append(out, it)
		if len(out) == maxResults {
			break
		}
	}
	return out
}

func matchTitle(line string) (string, bool) {
	m := headingTitle.FindStringSubmatch(line)
	if m == nil {
		m = boldTitle.FindStringSubmatch(line)
	}
	if m == nil {
		return "", false
	}
	raw := m[1]
	if raw == "" && len(m) > 2 {
		raw = m[2]
	}
	raw = strings.NewReplacer("[", "", "]", "").Replace(raw)
	return strings.TrimSpace(raw), true
}

// validTitle rejects page furniture: too-short or too-long headings and
// blacklisted navigation terms (singular or plural).
func validTitle(title string, blacklist []string) bool {
	n := utf8.RuneCountInString(title)
	if n <= 3 || n >= 100 {
		return false
	}
	low := strings.ToLower(title)
	for _, word := range blacklist {
		if low == word || low == word+"s" {
			return false
		}
	}
	return true
}
