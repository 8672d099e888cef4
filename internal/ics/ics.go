// Package ics builds minimal calendar files for planned visits.
package ics

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rcliao/theaterlog/internal/model"
)

// MimeType is the content type of a calendar file.
const MimeType = "text/calendar"

// defaultDuration is assumed when the visit has no known end time.
const defaultDuration = 2 * time.Hour

var newlines = regexp.MustCompile(`\r?\n`)
var unsafe = regexp.MustCompile(`[^\w\d\-]+`)

// Event renders a single VEVENT calendar for the review. An unscheduled
// review is placed at now.
func Event(r model.Review, now time.Time) []byte {
	start := now
	if r.Date != 0 {
		start = time.UnixMilli(r.Date)
	}
	end := start.Add(defaultDuration)

	title := r.Title
	if title == "" {
		title = "Voorstelling"
	}
	title = newlines.ReplaceAllString(title, " ")
	description := newlines.ReplaceAllString(r.Body+"\n"+r.Info, " ")

	uid := fmt.Sprintf("theaterlog-%08x@local", rand.Uint32())
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//theaterlog//NL",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + Timestamp(now),
		"DTSTART:" + Timestamp(start),
		"DTEND:" + Timestamp(end),
		"SUMMARY:" + title,
		"DESCRIPTION:" + description,
		"LOCATION:" + r.Location,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\r\n"))
}

// Timestamp formats t as a UTC calendar timestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// FileName derives a safe calendar filename from the review title.
func FileName(title string) string {
	name := unsafe.ReplaceAllString(strings.TrimSpace(title), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "voorstelling"
	}
	return name + ".ics"
}
