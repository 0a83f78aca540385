package matchservice

import (
	"context"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
)

// fakeMatchRepo is an in-memory Repository for service tests.
type fakeMatchRepo struct {
	matches map[string]*matchdb.Match

	updateCalls int
	updateErr   error
}

func newFakeMatchRepo(matches ...*matchdb.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[string]*matchdb.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) GetMatch(_ context.Context, _ bun.IDB, matchID string) (*matchdb.Match, error) {
	match, ok := r.matches[matchID]
	if !ok {
		return nil, matchdb.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) CreateMatch(_ context.Context, _ bun.IDB, match *matchdb.Match) error {
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) UpsertHoleEntry(_ context.Context, _ bun.IDB, matchID string, holeNumber int, entry matchtypes.HoleEntry) (*matchdb.Match, error) {
	match, ok := r.matches[matchID]
	if !ok {
		return nil, matchdb.ErrMatchNotFound
	}
	match.Holes.SetEntry(holeNumber, entry)
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) UpdateDerivedState(_ context.Context, _ bun.IDB, matchID string, status matchtypes.MatchStatus, result matchtypes.MatchResult) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	match, ok := r.matches[matchID]
	if !ok {
		return matchdb.ErrMatchNotFound
	}
	match.Status = &status
	match.Result = &result
	return nil
}
