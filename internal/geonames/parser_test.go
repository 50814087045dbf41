package geonames_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/geonames"
)

const seattleLine = "US\t98101\tSeattle\tWashington\tWA\tKing\t033\t\t\t47.6114\t-122.3305\t4"

func parseAll(t *testing.T, input string) ([]geonames.Record, geonames.ParseStats) {
	t.Helper()
	var records []geonames.Record
	stats, err := geonames.Parse(strings.NewReader(input), nil, func(rec geonames.Record) error {
		records = append(records, rec)
		return nil
	})
	require.NoError(t, err)
	return records, stats
}

func TestParse_ReadsGeoNamesFields(t *testing.T) {
	records, stats := parseAll(t, seattleLine+"\n")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "US", rec.Country)
	assert.Equal(t, "98101", rec.PostalCode)
	assert.Equal(t, "98101", rec.DisplayCode)
	assert.Equal(t, "Seattle", rec.PlaceName)
	assert.Equal(t, "Washington", rec.Admin1Name)
	assert.Equal(t, "WA", rec.Admin1Code)
	assert.Equal(t, "King", rec.Admin2Name)
	assert.Equal(t, "033", rec.Admin2Code)
	assert.Empty(t, rec.Admin3Name)
	require.True(t, rec.HasCoords)
	assert.InDelta(t, 47.6114, rec.Latitude, 0.0001)
	assert.InDelta(t, -122.3305, rec.Longitude, 0.0001)
	assert.Equal(t, 1, stats.Records)
}

func TestParse_NormalizesCodeKeepsDisplay(t *testing.T) {
	line := "CA\tV6B 1A1\tVancouver\tBritish Columbia\tBC\tMetro Vancouver\t\t\t\t49.2774\t-123.1163\t4"

	records, _ := parseAll(t, line)

	require.Len(t, records, 1)
	assert.Equal(t, "V6B1A1", records[0].PostalCode)
	assert.Equal(t, "V6B 1A1", records[0].DisplayCode)
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		seattleLine,
		"US\t98102\tSeattle",
		"",
		"\t98103\tSeattle\tWashington\tWA\tKing\t033\t\t\t47.6\t-122.3\t4",
		"US\t\tSeattle\tWashington\tWA\tKing\t033\t\t\t47.6\t-122.3\t4",
	}, "\n")

	records, stats := parseAll(t, input)

	require.Len(t, records, 1, "only the complete line should survive")
	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, 4, stats.Skipped)
	assert.Equal(t, 1, stats.Records)
}

func TestParse_UnparseableCoordinatesKeepRecord(t *testing.T) {
	line := "US\t99999\tNowhere\tAlaska\tAK\t\t\t\t\tnot-a-number\t\t1"

	records, stats := parseAll(t, line)

	require.Len(t, records, 1)
	assert.False(t, records[0].HasCoords)
	assert.Zero(t, records[0].Latitude)
	assert.Equal(t, 0, stats.Skipped, "missing coordinates are not a reason to drop the row")
}

func TestParse_CallbackErrorAborts(t *testing.T) {
	input := seattleLine + "\n" + seattleLine + "\n"

	calls := 0
	_, err := geonames.Parse(strings.NewReader(input), nil, func(rec geonames.Record) error {
		calls++
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}
