// Package report implements the CSV report codec: a fixed four-column export
// with custom escaping, and a quote-aware parser for reading such files back.
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcliao/theaterlog/internal/model"
)

// FileName is the delivery name of the generated report.
const FileName = "theaterlog_rapport.csv"

// MimeType is the content type of the generated report.
const MimeType = "text/csv"

// Column labels of the report schema. Import matches on these exact headers.
const (
	ColTitle    = "Voorstelling"
	ColDirector = "Artiest"
	ColRating   = "Score"
	ColNote     = "Notitie"
)

// noteLimit is the maximum rune length of the note column, ellipsis included.
const noteLimit = 240

var newlines = regexp.MustCompile(`\r?\n`)

var titleCollator = collate.New(language.Dutch)

// Generate renders the collection as a CRLF-terminated CSV report. Rows are
// ordered by rating descending, ties broken by locale-aware title comparison.
func Generate(reviews []model.Review) string {
	rows := make([]model.Review, len(reviews))
	copy(rows, reviews)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return titleCollator.CompareString(rows[i].Title, rows[j].Title) < 0
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join([]string{ColTitle, ColDirector, ColRating, ColNote}, ","))
	for _, r := range rows {
		lines = append(lines, strings.Join([]string{
			escape(r.Title, false),
			escape(r.Director, false),
			escape(strconv.Itoa(r.Rating), false),
			escape(r.Body, true),
		}, ","))
	}
	return strings.Join(lines, "\r\n")
}

// escape collapses embedded newlines to a space and quote-wraps fields that
// contain a comma, a quote or a newline, doubling internal quotes. Note
// fields are additionally truncated to noteLimit runes with an ellipsis.
func escape(v string, note bool) string {
	s := newlines.ReplaceAllString(v, " ")
	if note {
		runes := []rune(s)
		if len(runes) > noteLimit {
			s = string(runes[:noteLimit-1]) + "…"
		}
	}
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Parse reads a CSV report into loose row maps keyed by the header labels.
// It accepts a leading byte-order mark and both CRLF and LF line endings;
// blank lines are dropped. Commas inside quoted fields are not separators
// and "" inside a quoted field decodes to a literal quote.
func Parse(text string) []map[string]string {
	text = strings.TrimPrefix(text, "\uFEFF")

	var header []string
	var rows []map[string]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitLine(line)
		if header == nil {
			header = fields
			continue
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(fields) {
				row[key] = fields[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine splits one CSV line on commas outside quotes. A single boolean
// tracks quote state; a doubled quote inside a quoted field is a literal one.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// CandidateRow maps a parsed report row onto the loose import keys used by
// the merge pipeline: Voorstelling → title, Artiest → director, Score →
// rating, Notitie → body.
type CandidateRow struct {
	Title    string
	Director string
	Rating   int
	Body     string
}

// Candidates converts parsed rows into import candidate rows. A non-numeric
// score counts as unrated.
func Candidates(rows []map[string]string) []CandidateRow {
	out := make([]CandidateRow, 0, len(rows))
	for _, row := range rows {
		rating, _ := strconv.Atoi(strings.TrimSpace(row[ColRating]))
		out = append(out, CandidateRow{
			Title:    row[ColTitle],
			Director: row[ColDirector],
			Rating:   rating,
			Body:     row[ColNote],
		})
	}
	return out
}
