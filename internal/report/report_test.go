package report

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/theaterlog/internal/model"
)

func TestGenerateHeaderAndLineEndings(t *testing.T) {
	out := Generate([]model.Review{{Title: "Hamlet", Rating: 3}})

	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Voorstelling,Artiest,Score,Notitie", lines[0])
	assert.Equal(t, "Hamlet,,3,", lines[1])
}

func TestGenerateRowOrder(t *testing.T) {
	out := Generate([]model.Review{
		{Title: "Zebra", Rating: 3},
		{Title: "apfel", Rating: 3},
		{Title: "Hamlet", Rating: 5},
		{Title: "Lear", Rating: 0},
	})

	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 5)
	// Rating descending, ties by locale-aware title ascending
	// (case-insensitive, unlike a plain byte compare).
	assert.True(t, strings.HasPrefix(lines[1], "Hamlet,"))
	assert.True(t, strings.HasPrefix(lines[2], "apfel,"))
	assert.True(t, strings.HasPrefix(lines[3], "Zebra,"))
	assert.True(t, strings.HasPrefix(lines[4], "Lear,"))
}

func TestEscapeQuotesAndNewlines(t *testing.T) {
	out := Generate([]model.Review{{
		Title:  "Hamlet",
		Rating: 4,
		Body:   "Great, \"loved\" it\nreally",
	}})

	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 2)
	// Newline collapsed to a space, quotes doubled, field wrapped.
	assert.Equal(t, `Hamlet,,4,"Great, ""loved"" it really"`, lines[1])
}

func TestEscapeCommaInTitle(t *testing.T) {
	out := Generate([]model.Review{{Title: "Romeo, Juliet"}})
	lines := strings.Split(out, "\r\n")
	assert.Equal(t, `"Romeo, Juliet",,0,`, lines[1])
}

func TestNoteTruncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	out := Generate([]model.Review{{Title: "Hamlet", Body: long, Director: long}})

	rows := Parse(out)
	require.Len(t, rows, 1)

	note := rows[0][ColNote]
	assert.Equal(t, 240, utf8.RuneCountInString(note))
	assert.True(t, strings.HasSuffix(note, "…"))
	// Truncation applies only to the note column.
	assert.Equal(t, long, rows[0][ColDirector])
}

func TestNoteAtLimitIsUntouched(t *testing.T) {
	exact := strings.Repeat("y", 240)
	out := Generate([]model.Review{{Title: "Hamlet", Body: exact}})
	rows := Parse(out)
	require.Len(t, rows, 1)
	assert.Equal(t, exact, rows[0][ColNote])
}

func TestParseAcceptsBOMAndLFEndings(t *testing.T) {
	text := "\uFEFFVoorstelling,Artiest,Score,Notitie\nHamlet,Brook,5,fine\n\nLear,,0,\n"
	rows := Parse(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hamlet", rows[0][ColTitle])
	assert.Equal(t, "Brook", rows[0][ColDirector])
	assert.Equal(t, "Lear", rows[1][ColTitle])
}

func TestParseQuotedFields(t *testing.T) {
	text := "a,b\r\n" + `"x, y","he said ""hi"""` + "\r\n"
	rows := Parse(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "x, y", rows[0]["a"])
	assert.Equal(t, `he said "hi"`, rows[0]["b"])
}

func TestParseShortRow(t *testing.T) {
	rows := Parse("a,b,c\n1,2\n")
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
	assert.Equal(t, "", rows[0]["c"])
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\r\n\n"))
}

func TestRoundTrip(t *testing.T) {
	// Field fragments chosen to hit commas and quotes in every text
	// column; the cross product gives well over 200 combinations.
	// Embedded newlines are covered separately since collapsing them
	// is part of the format.
	fragments := []string{
		"plain",
		"with, comma",
		`with "quotes"`,
		"mixed, \"both\"",
		"ünïcode çast",
		` ends in quote"`,
		"",
	}
	ratings := []int{0, 1, 3, 5}

	var reviews []model.Review
	n := 0
	for _, title := range fragments {
		for _, director := range fragments {
			for _, body := range fragments {
				if title == "" {
					continue
				}
				reviews = append(reviews, model.Review{
					Title:    fmt.Sprintf("%s #%d", title, n),
					Director: director,
					Body:     body,
					Rating:   ratings[n%len(ratings)],
				})
				n++
			}
		}
	}
	require.Greater(t, len(reviews), 200)

	rows := Parse(Generate(reviews))
	require.Len(t, rows, len(reviews))

	byTitle := make(map[string]map[string]string, len(rows))
	for _, row := range rows {
		byTitle[row[ColTitle]] = row
	}

	for _, r := range reviews {
		row, ok := byTitle[r.Title]
		require.True(t, ok, "missing row for %q", r.Title)
		assert.Equal(t, r.Director, row[ColDirector])
		assert.Equal(t, strconv.Itoa(r.Rating), row[ColRating])
		assert.Equal(t, r.Body, row[ColNote])
	}
}

func TestRoundTripNewlineIsLossy(t *testing.T) {
	// Newline collapsing is part of the format, not a bug.
	rows := Parse(Generate([]model.Review{{Title: "Hamlet", Body: "line one\nline two"}}))
	require.Len(t, rows, 1)
	assert.Equal(t, "line one line two", rows[0][ColNote])
}

func TestCandidates(t *testing.T) {
	rows := Parse("Voorstelling,Artiest,Score,Notitie\r\nHamlet,Brook,5,fine\r\nLear,,niet,\r\n")
	out := Candidates(rows)
	require.Len(t, out, 2)
	assert.Equal(t, CandidateRow{Title: "Hamlet", Director: "Brook", Rating: 5, Body: "fine"}, out[0])
	assert.Equal(t, 0, out[1].Rating)
}
