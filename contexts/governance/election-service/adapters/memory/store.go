package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/ports"

	"github.com/google/uuid"
)

// Store keeps elections and votes in process memory. RecordVote holds the
// write lock for the whole transaction, so concurrent submissions for the
// same voter are serialized and only the first one records.
type Store struct {
	mu sync.RWMutex

	// clockMu is separate from mu: RecordVote callers read the clock while
	// the store lock is held.
	clockMu sync.RWMutex
	now     time.Time

	elections  map[string]entities.Election
	ballots    map[string]entities.Ballot
	candidates map[string]entities.Candidate
	votes      map[string]entities.Vote
	selections map[string]entities.Selection
}

func NewStore(seed []entities.Election) *Store {
	elections := make(map[string]entities.Election, len(seed))
	for _, election := range seed {
		elections[election.ElectionID] = cloneElection(election)
	}
	return &Store{
		elections:  elections,
		ballots:    make(map[string]entities.Ballot),
		candidates: make(map[string]entities.Candidate),
		votes:      make(map[string]entities.Vote),
		selections: make(map[string]entities.Selection),
	}
}

// SetNow pins the store clock. A zero value restores wall-clock time.
func (s *Store) SetNow(now time.Time) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.now = now.UTC()
}

func (s *Store) SetElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = cloneElection(election)
}

func (s *Store) SetBallot(ballot entities.Ballot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[strings.TrimSpace(ballot.BallotID)] = ballot
}

func (s *Store) SetCandidate(candidate entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
}

func (s *Store) CreateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.elections[election.ElectionID]; exists {
		return domainerrors.ErrConflict
	}
	for _, existing := range s.elections {
		if existing.Name == election.Name {
			return domainerrors.ErrConflict
		}
	}
	s.elections[election.ElectionID] = cloneElection(election)
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return cloneElection(election), nil
}

func (s *Store) GetLatestElection(_ context.Context) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.listElectionsLocked()
	if len(items) == 0 {
		return entities.Election{}, domainerrors.ErrNoElections
	}
	return items[len(items)-1], nil
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listElectionsLocked(), nil
}

func (s *Store) SetAllowedVoters(_ context.Context, electionID string, voterIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return domainerrors.ErrElectionNotFound
	}
	election.AllowedVoters = append([]string(nil), voterIDs...)
	s.elections[election.ElectionID] = election
	return nil
}

func (s *Store) CreateBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[ballot.ElectionID]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	if _, exists := s.ballots[ballot.BallotID]; exists {
		return domainerrors.ErrConflict
	}
	s.ballots[ballot.BallotID] = ballot
	return nil
}

func (s *Store) GetBallot(_ context.Context, ballotID string) (entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballot, ok := s.ballots[strings.TrimSpace(ballotID)]
	if !ok {
		return entities.Ballot{}, domainerrors.ErrBallotNotFound
	}
	return ballot, nil
}

func (s *Store) ListBallots(_ context.Context, electionID string) ([]entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Ballot, 0)
	for _, ballot := range s.ballots {
		if ballot.ElectionID == electionID {
			items = append(items, ballot)
		}
	}
	entities.SortBallots(items)
	return items, nil
}

func (s *Store) CreateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ballots[candidate.BallotID]; !ok {
		return domainerrors.ErrBallotNotFound
	}
	if _, exists := s.candidates[candidate.CandidateID]; exists {
		return domainerrors.ErrConflict
	}
	s.candidates[candidate.CandidateID] = candidate
	return nil
}

func (s *Store) ListCandidates(_ context.Context, ballotID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballotID = strings.TrimSpace(ballotID)
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.BallotID == ballotID {
			items = append(items, candidate)
		}
	}
	entities.SortCandidates(items)
	return items, nil
}

func (s *Store) ListCandidatesByElection(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballots := s.ballotIDsLocked(strings.TrimSpace(electionID))
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if _, ok := ballots[candidate.BallotID]; ok {
			items = append(items, candidate)
		}
	}
	entities.SortCandidates(items)
	return items, nil
}

func (s *Store) HasVoted(_ context.Context, electionID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasVotedLocked(strings.TrimSpace(electionID), strings.TrimSpace(voterID)), nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (s *Store) ListVotes(_ context.Context, electionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.ElectionID == electionID {
			items = append(items, vote)
		}
	}
	sortVotesByCreation(items)
	return items, nil
}

func (s *Store) ListSelectionsByBallot(_ context.Context, ballotID string) ([]entities.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballotID = strings.TrimSpace(ballotID)
	return s.filterSelectionsLocked(func(item entities.Selection) bool {
		return item.BallotID == ballotID
	}), nil
}

func (s *Store) ListSelectionsByElection(_ context.Context, electionID string) ([]entities.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballots := s.ballotIDsLocked(strings.TrimSpace(electionID))
	return s.filterSelectionsLocked(func(item entities.Selection) bool {
		_, ok := ballots[item.BallotID]
		return ok
	}), nil
}

func (s *Store) ListSelectionsByVote(_ context.Context, voteID string) ([]entities.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voteID = strings.TrimSpace(voteID)
	if voteID == "" {
		return []entities.Selection{}, nil
	}
	return s.filterSelectionsLocked(func(item entities.Selection) bool {
		return item.VoteID == voteID
	}), nil
}

func (s *Store) DisassociateVoters(_ context.Context, electionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	var affected int64
	for voteID, vote := range s.votes {
		if vote.ElectionID != electionID {
			continue
		}
		vote.VoterID = ""
		s.votes[voteID] = vote
		affected++
	}
	return affected, nil
}

func (s *Store) RecordVote(_ context.Context, fn func(tx ports.VoteTransaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &voteTx{
		store:      s,
		votes:      make(map[string]entities.Vote),
		candidates: make(map[string]entities.Candidate),
		selections: make(map[string]entities.Selection),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for id, vote := range tx.votes {
		s.votes[id] = vote
	}
	for id, candidate := range tx.candidates {
		s.candidates[id] = candidate
	}
	for id, selection := range tx.selections {
		s.selections[id] = selection
	}
	return nil
}

func (s *Store) Now() time.Time {
	s.clockMu.RLock()
	defer s.clockMu.RUnlock()
	if !s.now.IsZero() {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) listElectionsLocked() []entities.Election {
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, cloneElection(election))
	}
	entities.SortElections(items)
	return items
}

func (s *Store) ballotIDsLocked(electionID string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, ballot := range s.ballots {
		if ballot.ElectionID == electionID {
			ids[ballot.BallotID] = struct{}{}
		}
	}
	return ids
}

func (s *Store) hasVotedLocked(electionID string, voterID string) bool {
	if voterID == "" {
		return false
	}
	for _, vote := range s.votes {
		if vote.ElectionID == electionID && vote.VoterID == voterID {
			return true
		}
	}
	return false
}

func (s *Store) filterSelectionsLocked(keep func(entities.Selection) bool) []entities.Selection {
	items := make([]entities.Selection, 0)
	for _, selection := range s.selections {
		if keep(selection) {
			items = append(items, selection)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SelectionID < items[j].SelectionID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

// voteTx stages writes until fn returns. The store lock is held by
// RecordVote for its whole lifetime.
type voteTx struct {
	store      *Store
	votes      map[string]entities.Vote
	candidates map[string]entities.Candidate
	selections map[string]entities.Selection
}

func (tx *voteTx) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	election, ok := tx.store.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return cloneElection(election), nil
}

func (tx *voteTx) HasVoted(_ context.Context, electionID string, voterID string) (bool, error) {
	electionID = strings.TrimSpace(electionID)
	voterID = strings.TrimSpace(voterID)
	if tx.store.hasVotedLocked(electionID, voterID) {
		return true, nil
	}
	for _, vote := range tx.votes {
		if vote.ElectionID == electionID && vote.VoterID == voterID {
			return true, nil
		}
	}
	return false, nil
}

func (tx *voteTx) CreateVote(ctx context.Context, vote entities.Vote) error {
	voted, err := tx.HasVoted(ctx, vote.ElectionID, vote.VoterID)
	if err != nil {
		return err
	}
	if voted {
		return domainerrors.ErrAlreadyVoted
	}
	if _, exists := tx.store.votes[vote.VoteID]; exists {
		return domainerrors.ErrConflict
	}
	tx.votes[vote.VoteID] = vote
	return nil
}

func (tx *voteTx) GetOrCreateWriteIn(_ context.Context, candidate entities.Candidate) (entities.Candidate, error) {
	if _, ok := tx.store.ballots[candidate.BallotID]; !ok {
		return entities.Candidate{}, domainerrors.ErrBallotNotFound
	}
	matches := func(existing entities.Candidate) bool {
		return existing.WriteIn &&
			existing.BallotID == candidate.BallotID &&
			existing.FirstName == candidate.FirstName &&
			existing.LastName == candidate.LastName
	}
	for _, existing := range tx.store.candidates {
		if matches(existing) {
			return existing, nil
		}
	}
	for _, existing := range tx.candidates {
		if matches(existing) {
			return existing, nil
		}
	}
	candidate.WriteIn = true
	candidate.Incumbent = false
	tx.candidates[candidate.CandidateID] = candidate
	return candidate, nil
}

func (tx *voteTx) CreateSelection(_ context.Context, selection entities.Selection) error {
	_, known := tx.store.candidates[selection.CandidateID]
	if !known {
		_, known = tx.candidates[selection.CandidateID]
	}
	if !known {
		return domainerrors.ErrCandidateNotFound
	}
	tx.selections[selection.SelectionID] = selection
	return nil
}

func cloneElection(election entities.Election) entities.Election {
	election.AllowedVoters = append([]string(nil), election.AllowedVoters...)
	return election
}

func sortVotesByCreation(items []entities.Vote) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

var _ ports.ElectionRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
