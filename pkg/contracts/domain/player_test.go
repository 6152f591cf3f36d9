package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRecord_StatRoundTrip(t *testing.T) {
	for _, field := range NumericFields {
		t.Run(field, func(t *testing.T) {
			var rec PlayerRecord
			require.True(t, rec.SetStat(field, 7))
			v, ok := rec.Stat(field)
			require.True(t, ok)
			assert.Equal(t, 7.0, v)
			assert.True(t, IsStatField(field))
		})
	}
}

func TestPlayerRecord_IntegerColumnsTruncate(t *testing.T) {
	var rec PlayerRecord
	rec.SetStat(FieldAge, 25.9)
	rec.SetStat(FieldGames, 74)

	assert.Equal(t, 25, rec.Age)
	assert.Equal(t, 74, rec.GamesPlayed)
}

func TestPlayerRecord_UnknownField(t *testing.T) {
	var rec PlayerRecord
	assert.False(t, rec.SetStat("Player", 1))
	_, ok := rec.Stat("XYZ")
	assert.False(t, ok)
	assert.Equal(t, 0.0, rec.MustStat("XYZ"))
	assert.False(t, IsStatField(FieldTeam))
}

func TestPlayerRecord_Identity(t *testing.T) {
	rec := PlayerRecord{Player: "A", Position: "PG", Team: "BOS"}

	v, ok := rec.Identity(FieldTeam)
	assert.True(t, ok)
	assert.Equal(t, "BOS", v)
	_, ok = rec.Identity(FieldPoints)
	assert.False(t, ok)
}

func TestParseKindAndSeason(t *testing.T) {
	k, err := ParseKind("playoff")
	require.NoError(t, err)
	assert.Equal(t, KindPlayoff, k)

	_, err = ParseKind("preseason")
	assert.Error(t, err)

	season := Season{
		Regular: Dataset{Kind: KindRegular, Records: []PlayerRecord{{Player: "A", Points: 3}}},
		Playoff: Dataset{Kind: KindPlayoff},
	}
	ds, ok := season.Dataset(KindRegular)
	require.True(t, ok)
	assert.Equal(t, []float64{3}, ds.Values(FieldPoints))

	_, ok = season.Dataset("other")
	assert.False(t, ok)
}

func TestColumnsCoverNumericFields(t *testing.T) {
	assert.Len(t, Columns, 30)
	assert.Len(t, NumericFields, 27)
	for _, f := range NumericFields {
		assert.Contains(t, Columns, f)
	}
}
