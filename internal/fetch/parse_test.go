package fetch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDefault(text string) []Listing {
	return ParseListings(text, DefaultBlacklist(), 25)
}

func TestParseTitleDateBody(t *testing.T) {
	text := strings.Join([]string{
		"### Hamlet",
		"12 okt 2024",
		"Een prins twijfelt, en dat duurt lang.",
	}, "\n")

	items := parseDefault(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Hamlet", items[0].Title)
	assert.Equal(t, "12 okt 2024", items[0].Date)
	assert.Equal(t, "Een prins twijfelt, en dat duurt lang.", items[0].Body)
}

func TestParseBlacklistedHeadingIsNoTitle(t *testing.T) {
	text := strings.Join([]string{
		"### Cookies",
		"### Voorstellingen",
		"### Hamlet",
		"12 okt 2024",
		"Een prins twijfelt, en dat duurt lang.",
	}, "\n")

	items := parseDefault(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Hamlet", items[0].Title)
}

func TestParseBlacklistMatchesPlural(t *testing.T) {
	items := parseDefault("### Concerten\n### Genres\n")
	assert.Empty(t, items)

	// "concerten" is listed; its plural form "concertens" is also furniture.
	items = parseDefault("### Concertens\n")
	assert.Empty(t, items)
}

func TestParseTitleLengthBounds(t *testing.T) {
	long := strings.Repeat("x", 100)
	text := "### abc\n### " + long + "\n### Goldberg\n"

	items := parseDefault(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Goldberg", items[0].Title)
}

func TestParseBoldAndBracketTitles(t *testing.T) {
	text := "**De Meeuw**\n## [Faust]\n"

	items := parseDefault(text)
	require.Len(t, items, 2)
	assert.Equal(t, "De Meeuw", items[0].Title)
	assert.Equal(t, "Faust", items[1].Title)
}

func TestParseNumericDatePattern(t *testing.T) {
	items := parseDefault("### Hamlet\nvanaf 12-10-2024 te zien\n")
	require.Len(t, items, 1)
	assert.Equal(t, "12-10-2024", items[0].Date)
}

func TestParseFirstDateWins(t *testing.T) {
	items := parseDefault("### Hamlet\n12 okt 2024\n13 okt 2024\n")
	require.Len(t, items, 1)
	assert.Equal(t, "12 okt 2024", items[0].Date)
}

func TestParseBodyWindow(t *testing.T) {
	tooShort := "korte regel"
	tooLong := strings.Repeat("y", 200)
	heading := "#### " + strings.Repeat("z", 30)
	good := "Dit is een beschrijving van precies goede lengte."

	items := parseDefault("### Hamlet\n" + tooShort + "\n" + tooLong + "\n" + heading + "\n" + good + "\n")
	require.Len(t, items, 1)
	assert.Equal(t, good, items[0].Body)
}

func TestParseDateAndBodyNeedOpenCandidate(t *testing.T) {
	// Lines before any title are ignored.
	items := parseDefault("12 okt 2024\nEen beschrijving die lang genoeg is om te tellen.\n### Hamlet\n")
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Date)
	assert.Empty(t, items[0].Body)
}

func TestParseDedupByCaseFoldedTitle(t *testing.T) {
	items := parseDefault("### Hamlet\n### HAMLET\n### Faust\n")
	require.Len(t, items, 2)
	assert.Equal(t, "Hamlet", items[0].Title)
	assert.Equal(t, "Faust", items[1].Title)
}

func TestParseCapsResults(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "### Voorstelling nummer %d\n", i)
	}
	items := parseDefault(b.String())
	assert.Len(t, items, 25)
}

func TestParseCustomBlacklist(t *testing.T) {
	items := ParseListings("### Hamlet\n### Sponsors\n", []string{"sponsors"}, 25)
	require.Len(t, items, 1)
	assert.Equal(t, "Hamlet", items[0].Title)
}

func TestParseEmptyTextYieldsNothing(t *testing.T) {
	assert.Empty(t, parseDefault(""))
	assert.Empty(t, parseDefault("gewone tekst zonder koppen\n"))
}
