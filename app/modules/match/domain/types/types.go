// Package matchtypes holds the match-play domain model: formats, hole entries,
// stroke allocations, and the derived summary written back onto a match.
package matchtypes

import (
	"encoding/json"
	"math"
	"strconv"
)

// Format identifies the scoring format of a round. It is fixed when the round
// is created and decides the side size and which hole-entry fields apply.
type Format string

const (
	FormatSingles        Format = "singles"
	FormatTwoManBestBall Format = "two_man_best_ball"
	FormatTwoManShamble  Format = "two_man_shamble"
	FormatTwoManScramble Format = "two_man_scramble"
)

// SideSize returns the number of players on each side for the format.
func (f Format) SideSize() int {
	if f == FormatSingles {
		return 1
	}
	return 2
}

// TeamSide identifies one side of a match.
type TeamSide string

const (
	TeamA TeamSide = "teamA"
	TeamB TeamSide = "teamB"
)

// Opponent returns the other side.
func (s TeamSide) Opponent() TeamSide {
	if s == TeamA {
		return TeamB
	}
	return TeamA
}

// Winner is the match-level verdict. WinnerAllSquare doubles as the display
// default for matches that are still open; Closed is the authoritative
// decided-flag.
type Winner string

const (
	WinnerTeamA     Winner = "teamA"
	WinnerTeamB     Winner = "teamB"
	WinnerAllSquare Winner = "AS"
)

// HoleOutcome is the verdict for a single hole.
type HoleOutcome string

const (
	HoleOutcomeTeamA      HoleOutcome = "teamA"
	HoleOutcomeTeamB      HoleOutcome = "teamB"
	HoleOutcomeAllSquare  HoleOutcome = "AS"
	HoleOutcomeIncomplete HoleOutcome = "incomplete"
)

// Gross is one ball's raw stroke count on one hole. The zero value means no
// score has been entered; 0 strokes is a present, valid score and is distinct
// from absence. Garbage input (strings, booleans, NaN, infinities) decodes to
// absent rather than failing, so partial entry during live play never breaks
// recomputation.
type Gross struct {
	value   float64
	present bool
}

// NewGross returns a present score.
func NewGross(v float64) Gross {
	return Gross{value: v, present: true}
}

// Value returns the score and whether it is a usable finite number.
func (g Gross) Value() (float64, bool) {
	return g.value, g.Valid()
}

// Valid reports whether the score is present and finite.
func (g Gross) Valid() bool {
	return g.present && !math.IsNaN(g.value) && !math.IsInf(g.value, 0)
}

// MarshalJSON encodes an absent or non-finite score as null.
func (g Gross) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(g.value)
}

// UnmarshalJSON accepts a JSON number; every other value (null, string, bool,
// object) becomes an absent score without error. Decoding goes through a
// pointer because unmarshalling null into a bare float64 is a no-op, which
// would read back stored nulls as present scores of 0.
func (g *Gross) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil || v == nil {
		*g = Gross{}
		return nil
	}
	*g = Gross{value: *v, present: true}
	return nil
}

// HoleEntry is the raw score entry for one hole. Which fields carry meaning
// depends on the round format; the decision engine only reads the fields its
// format defines, so stale entries from a format change are harmless.
type HoleEntry struct {
	TeamAPlayerGross  Gross    `json:"teamAPlayerGross"`
	TeamBPlayerGross  Gross    `json:"teamBPlayerGross"`
	TeamAPlayersGross [2]Gross `json:"teamAPlayersGross"`
	TeamBPlayersGross [2]Gross `json:"teamBPlayersGross"`
	TeamAGross        Gross    `json:"teamAGross"`
	TeamBGross        Gross    `json:"teamBGross"`
}

// Empty reports whether no score of any shape has been entered for the hole.
func (e HoleEntry) Empty() bool {
	return !e.TeamAPlayerGross.present && !e.TeamBPlayerGross.present &&
		!e.TeamAPlayersGross[0].present && !e.TeamAPlayersGross[1].present &&
		!e.TeamBPlayersGross[0].present && !e.TeamBPlayersGross[1].present &&
		!e.TeamAGross.present && !e.TeamBGross.present
}

// HoleCount is the number of holes in a regulation match.
const HoleCount = 18

// Holes is the per-hole entry table, indexed by hole number (1-based through
// the accessors). It replaces the store's sparse string-keyed map; keys that
// are not a canonical "1".."18" ("0", "19", "01", "1.0", ...) are dropped when
// decoding.
type Holes [HoleCount]HoleEntry

// Entry returns the entry for hole n, or a zero entry when n is out of range.
func (h *Holes) Entry(n int) HoleEntry {
	if n < 1 || n > HoleCount {
		return HoleEntry{}
	}
	return h[n-1]
}

// SetEntry stores the entry for hole n; out-of-range numbers are ignored.
func (h *Holes) SetEntry(n int, e HoleEntry) {
	if n < 1 || n > HoleCount {
		return
	}
	h[n-1] = e
}

// MarshalJSON encodes the table as an object keyed by hole number, emitting
// only holes with at least one entered score.
func (h Holes) MarshalJSON() ([]byte, error) {
	out := make(map[string]HoleEntry, HoleCount)
	for i, entry := range h {
		if !entry.Empty() {
			out[strconv.Itoa(i+1)] = entry
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the store's sparse map, keeping only canonical hole
// keys.
func (h *Holes) UnmarshalJSON(data []byte) error {
	*h = Holes{}
	var raw map[string]HoleEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		// A non-object hole table carries no usable entries.
		return nil
	}
	for key, entry := range raw {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > HoleCount || strconv.Itoa(n) != key {
			continue
		}
		h[n-1] = entry
	}
	return nil
}

// StrokeValue is the handicap stroke allotment for one hole, always 0 or 1.
// No format in play grants more than one stroke per hole.
type StrokeValue int

// NewStrokeValue clamps any out-of-range value to 0.
func NewStrokeValue(v int) StrokeValue {
	if v == 1 {
		return 1
	}
	return 0
}

// UnmarshalJSON clamps non-numeric or out-of-range values to 0 without error.
func (s *StrokeValue) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*s = 0
		return nil
	}
	if v == 1 {
		*s = 1
	} else {
		*s = 0
	}
	return nil
}

// StrokeAllocation maps hole number (1-based via At) to the stroke received
// there. Stored data with short or malformed arrays zero-fills, so downstream
// code can assume the {0,1} invariant everywhere.
type StrokeAllocation [HoleCount]StrokeValue

// At returns the stroke received on hole n; out-of-range numbers receive 0.
func (a StrokeAllocation) At(n int) StrokeValue {
	if n < 1 || n > HoleCount {
		return 0
	}
	return a[n-1]
}

// Total returns the number of strokes allocated across the card.
func (a StrokeAllocation) Total() int {
	total := 0
	for _, s := range a {
		total += int(s)
	}
	return total
}

// UnmarshalJSON accepts any JSON array, clamping each element and zero-filling
// the rest; non-array input yields an all-zero allocation.
func (a *StrokeAllocation) UnmarshalJSON(data []byte) error {
	*a = StrokeAllocation{}
	var raw []StrokeValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for i := 0; i < len(raw) && i < HoleCount; i++ {
		a[i] = raw[i]
	}
	return nil
}

// PlayerInMatch is one rostered player plus their pre-seeded stroke
// allocation for this match.
type PlayerInMatch struct {
	PlayerID string           `json:"playerId"`
	Strokes  StrokeAllocation `json:"strokesReceived"`
}

// MatchData is the raw state of one match: the format, the rosters, and the
// hole-entry table. Any hole may be edited at any time, including holes
// earlier than the furthest played one; derived state is always recomputed
// from scratch, never patched.
type MatchData struct {
	Format       Format          `json:"format"`
	TeamAPlayers []PlayerInMatch `json:"teamAPlayers"`
	TeamBPlayers []PlayerInMatch `json:"teamBPlayers"`
	Holes        Holes           `json:"holes"`
}

// CourseHole describes one hole of a course. HcpIndex is the difficulty rank,
// 1 hardest; a valid course has pairwise-distinct numbers and ranks.
type CourseHole struct {
	Number   int `json:"number"`
	Par      int `json:"par"`
	HcpIndex int `json:"hcpIndex"`
}

// Course is the course a round is played on.
type Course struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Slope  float64      `json:"slope"`
	Rating float64      `json:"rating"`
	Holes  []CourseHole `json:"holes"`
}

// TotalPar sums the par of every hole on the course.
func (c Course) TotalPar() int {
	total := 0
	for _, h := range c.Holes {
		total += h.Par
	}
	return total
}

// Round carries the round-level context a match is scored under.
type Round struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Format     Format  `json:"format"`
	PointValue float64 `json:"pointValue"`
	CourseID   string  `json:"courseId"`
}

// Player is tournament-level player metadata used to populate stat context.
type Player struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"displayName"`
	Tier          string  `json:"tier"`
	HandicapIndex float64 `json:"handicapIndex"`
}

// MatchSummary is the derived match state, recomputed in full on every read.
type MatchSummary struct {
	HolesWonA          int       `json:"holesWonA"`
	HolesWonB          int       `json:"holesWonB"`
	Thru               int       `json:"thru"`
	Leader             *TeamSide `json:"leader"`
	Margin             int       `json:"margin"`
	Dormie             bool      `json:"dormie"`
	Closed             bool      `json:"closed"`
	Winner             Winner    `json:"winner"`
	WinningHole        int       `json:"winningHole"`
	WasDown3PlusBack9A bool      `json:"wasDown3PlusBack9A"`
	WasDown3PlusBack9B bool      `json:"wasDown3PlusBack9B"`
	MarginHistory      []int     `json:"marginHistory"`
}

// Status projects the summary into the status record written back onto the
// match document.
func (s MatchSummary) Status() MatchStatus {
	return MatchStatus{
		Leader:             s.Leader,
		Margin:             s.Margin,
		Thru:               s.Thru,
		Dormie:             s.Dormie,
		Closed:             s.Closed,
		WasDown3PlusBack9A: s.WasDown3PlusBack9A,
		WasDown3PlusBack9B: s.WasDown3PlusBack9B,
		MarginHistory:      s.MarginHistory,
	}
}

// Result projects the summary into the result record written back onto the
// match document.
func (s MatchSummary) Result() MatchResult {
	return MatchResult{
		Winner:    s.Winner,
		HolesWonA: s.HolesWonA,
		HolesWonB: s.HolesWonB,
		Closed:    s.Closed,
	}
}

// MatchStatus is the live-state projection persisted on the match document.
type MatchStatus struct {
	Leader             *TeamSide `json:"leader"`
	Margin             int       `json:"margin"`
	Thru               int       `json:"thru"`
	Dormie             bool      `json:"dormie"`
	Closed             bool      `json:"closed"`
	WasDown3PlusBack9A bool      `json:"wasDown3PlusBack9A"`
	WasDown3PlusBack9B bool      `json:"wasDown3PlusBack9B"`
	MarginHistory      []int     `json:"marginHistory"`
}

// MatchResult is the outcome projection persisted on the match document. A
// result with Closed=false is provisional; editing an earlier hole can reopen
// a previously closed match.
type MatchResult struct {
	Winner    Winner `json:"winner"`
	HolesWonA int    `json:"holesWonA"`
	HolesWonB int    `json:"holesWonB"`
	Closed    bool   `json:"closed"`
}
