package matchservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	"github.com/clearwater-cup/matchplay/internal/testutils"
)

// TestSummarize_RandomDataInvariants drives the summarizer with generated
// matches and checks the structural properties that must hold for any input.
func TestSummarize_RandomDataInvariants(t *testing.T) {
	gen := testutils.NewTestDataGenerator(42)
	players := gen.GeneratePlayers(4)

	formats := []matchtypes.Format{
		matchtypes.FormatSingles,
		matchtypes.FormatTwoManBestBall,
		matchtypes.FormatTwoManShamble,
		matchtypes.FormatTwoManScramble,
	}

	for _, format := range formats {
		for run := 0; run < 25; run++ {
			data := gen.GenerateMatchData(format, players)
			s := Summarize(format, data)

			assert.False(t, s.Dormie && s.Closed, "dormie and closed are exclusive")
			assert.GreaterOrEqual(t, s.Margin, 0)
			assert.LessOrEqual(t, s.HolesWonA+s.HolesWonB, s.Thru)

			// Every hole is filled, so the history covers the full card and the
			// final entry matches the signed margin.
			require.Len(t, s.MarginHistory, 18)
			assert.Equal(t, 18, s.Thru)
			assert.True(t, s.Closed)

			final := s.MarginHistory[len(s.MarginHistory)-1]
			assert.Equal(t, s.Margin, abs(final))
			switch {
			case final > 0:
				require.NotNil(t, s.Leader)
				assert.Equal(t, matchtypes.TeamA, *s.Leader)
				assert.Equal(t, matchtypes.WinnerTeamA, s.Winner)
			case final < 0:
				require.NotNil(t, s.Leader)
				assert.Equal(t, matchtypes.TeamB, *s.Leader)
				assert.Equal(t, matchtypes.WinnerTeamB, s.Winner)
			default:
				assert.Nil(t, s.Leader)
				assert.Equal(t, matchtypes.WinnerAllSquare, s.Winner)
			}
		}
	}
}
