package matchtypes

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGross_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue float64
	}{
		{name: "number", input: `4`, wantValid: true, wantValue: 4},
		{name: "zero is a present score", input: `0`, wantValid: true, wantValue: 0},
		{name: "float", input: `4.0`, wantValid: true, wantValue: 4},
		{name: "string becomes absent", input: `"four"`, wantValid: false},
		{name: "bool becomes absent", input: `true`, wantValid: false},
		{name: "null becomes absent", input: `null`, wantValid: false},
		{name: "object becomes absent", input: `{"x":1}`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Gross
			require.NoError(t, json.Unmarshal([]byte(tt.input), &g))

			v, ok := g.Value()
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, v)
			}
		})
	}
}

func TestGross_NonFiniteIsInvalid(t *testing.T) {
	assert.False(t, NewGross(math.NaN()).Valid())
	assert.False(t, NewGross(math.Inf(1)).Valid())
	assert.False(t, NewGross(math.Inf(-1)).Valid())
}

func TestHoles_UnmarshalJSON_KeyFilter(t *testing.T) {
	input := `{
		"1":  {"teamAGross": 4},
		"18": {"teamAGross": 5},
		"0":  {"teamAGross": 6},
		"19": {"teamAGross": 7},
		"01": {"teamAGross": 8},
		"1.0": {"teamAGross": 9},
		"abc": {"teamAGross": 10}
	}`

	var holes Holes
	require.NoError(t, json.Unmarshal([]byte(input), &holes))

	v, ok := holes.Entry(1).TeamAGross.Value()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	v, ok = holes.Entry(18).TeamAGross.Value()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	for n := 2; n <= 17; n++ {
		assert.True(t, holes.Entry(n).Empty(), "hole %d should be empty", n)
	}
}

func TestHoles_MarshalRoundTrip(t *testing.T) {
	var holes Holes
	holes.SetEntry(3, HoleEntry{TeamAGross: NewGross(4), TeamBGross: NewGross(5)})

	data, err := json.Marshal(holes)
	require.NoError(t, err)

	var decoded Holes
	require.NoError(t, json.Unmarshal(data, &decoded))

	v, ok := decoded.Entry(3).TeamAGross.Value()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

// A stored hole with only one side's score marshals the other fields as null;
// reading the row back must keep them absent, not turn them into scores of 0.
func TestHoles_RoundTripKeepsAbsentScoresAbsent(t *testing.T) {
	var holes Holes
	holes.SetEntry(7, HoleEntry{TeamAPlayerGross: NewGross(4)})

	data, err := json.Marshal(holes)
	require.NoError(t, err)

	var decoded Holes
	require.NoError(t, json.Unmarshal(data, &decoded))

	entry := decoded.Entry(7)
	v, ok := entry.TeamAPlayerGross.Value()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	_, ok = entry.TeamBPlayerGross.Value()
	assert.False(t, ok, "opponent score must stay absent across a round trip")
	assert.False(t, entry.TeamAGross.Valid())
	assert.False(t, entry.TeamBGross.Valid())
	for i := 0; i < 2; i++ {
		assert.False(t, entry.TeamAPlayersGross[i].Valid())
		assert.False(t, entry.TeamBPlayersGross[i].Valid())
	}
}

func TestStrokeValue_Clamp(t *testing.T) {
	assert.Equal(t, StrokeValue(1), NewStrokeValue(1))
	assert.Equal(t, StrokeValue(0), NewStrokeValue(0))
	assert.Equal(t, StrokeValue(0), NewStrokeValue(2))
	assert.Equal(t, StrokeValue(0), NewStrokeValue(-1))

	tests := []struct {
		input string
		want  StrokeValue
	}{
		{input: `1`, want: 1},
		{input: `0`, want: 0},
		{input: `2`, want: 0},
		{input: `-1`, want: 0},
		{input: `"1"`, want: 0},
		{input: `null`, want: 0},
	}
	for _, tt := range tests {
		var s StrokeValue
		require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
		assert.Equal(t, tt.want, s, "input %s", tt.input)
	}
}

func TestStrokeAllocation_UnmarshalJSON(t *testing.T) {
	t.Run("short array zero-fills", func(t *testing.T) {
		var a StrokeAllocation
		require.NoError(t, json.Unmarshal([]byte(`[1,0,1]`), &a))
		assert.Equal(t, StrokeValue(1), a.At(1))
		assert.Equal(t, StrokeValue(0), a.At(2))
		assert.Equal(t, StrokeValue(1), a.At(3))
		for n := 4; n <= HoleCount; n++ {
			assert.Equal(t, StrokeValue(0), a.At(n))
		}
		assert.Equal(t, 2, a.Total())
	})

	t.Run("non-array yields all zero", func(t *testing.T) {
		var a StrokeAllocation
		require.NoError(t, json.Unmarshal([]byte(`"garbage"`), &a))
		assert.Equal(t, 0, a.Total())
	})

	t.Run("out-of-range hole receives zero", func(t *testing.T) {
		var a StrokeAllocation
		assert.Equal(t, StrokeValue(0), a.At(0))
		assert.Equal(t, StrokeValue(0), a.At(19))
	})
}
