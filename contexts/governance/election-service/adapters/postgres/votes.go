package postgresadapter

import (
	"context"
	"errors"
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) HasVoted(ctx context.Context, electionID string, voterID string) (bool, error) {
	return hasVoted(ctx, r.db, strings.TrimSpace(electionID), strings.TrimSpace(voterID), r)
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, r.logError("election_repo_get_vote_failed", err, "vote_id", strings.TrimSpace(voteID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVotes(ctx context.Context, electionID string) ([]entities.Vote, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_votes_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListSelectionsByBallot(ctx context.Context, ballotID string) ([]entities.Selection, error) {
	return r.listSelections(ctx, "election_repo_list_selections_by_ballot_failed",
		r.db.WithContext(ctx).Where("ballot_id = ?", strings.TrimSpace(ballotID)),
		"ballot_id", strings.TrimSpace(ballotID),
	)
}

func (r *Repository) ListSelectionsByElection(ctx context.Context, electionID string) ([]entities.Selection, error) {
	electionID = strings.TrimSpace(electionID)
	return r.listSelections(ctx, "election_repo_list_selections_by_election_failed",
		r.db.WithContext(ctx).Where("ballot_id IN (?)", r.ballotIDs(ctx, electionID)),
		"election_id", electionID,
	)
}

func (r *Repository) ListSelectionsByVote(ctx context.Context, voteID string) ([]entities.Selection, error) {
	voteID = strings.TrimSpace(voteID)
	if voteID == "" {
		return []entities.Selection{}, nil
	}
	return r.listSelections(ctx, "election_repo_list_selections_by_vote_failed",
		r.db.WithContext(ctx).Where("vote_id = ?", voteID),
		"vote_id", voteID,
	)
}

func (r *Repository) DisassociateVoters(ctx context.Context, electionID string) (int64, error) {
	electionID = strings.TrimSpace(electionID)
	result := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("election_id = ?", electionID).
		Update("voter_id", nil)
	if result.Error != nil {
		return 0, r.logError("election_repo_disassociate_voters_failed", result.Error, "election_id", electionID)
	}
	return result.RowsAffected, nil
}

func (r *Repository) RecordVote(ctx context.Context, fn func(tx ports.VoteTransaction) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&voteTx{db: tx, repo: r})
	})
}

func (r *Repository) listSelections(ctx context.Context, event string, query *gorm.DB, attrs ...any) ([]entities.Selection, error) {
	var rows []selectionModel
	err := query.
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError(event, err, attrs...)
	}
	items := make([]entities.Selection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// voteTx runs every statement on the transaction handle opened by RecordVote.
type voteTx struct {
	db   *gorm.DB
	repo *Repository
}

func (tx *voteTx) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := tx.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, tx.repo.logError("election_repo_tx_get_election_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	return tx.repo.withAllowedVoters(ctx, tx.db, row)
}

func (tx *voteTx) HasVoted(ctx context.Context, electionID string, voterID string) (bool, error) {
	return hasVoted(ctx, tx.db, strings.TrimSpace(electionID), strings.TrimSpace(voterID), tx.repo)
}

func (tx *voteTx) CreateVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := tx.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return tx.repo.logError("election_repo_create_vote_failed", err,
			"vote_id", row.ID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (tx *voteTx) GetOrCreateWriteIn(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error) {
	candidate.WriteIn = true
	candidate.Incumbent = false
	row := candidateModelFromEntity(candidate)
	err := tx.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "ballot_id"}, {Name: "first_name"}, {Name: "last_name"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Name: "write_in"}, Value: true}}},
		DoNothing:   true,
	}).Create(&row).Error
	if err != nil {
		return entities.Candidate{}, tx.repo.logError("election_repo_create_write_in_failed", err,
			"ballot_id", row.BallotID,
		)
	}

	var existing candidateModel
	err = tx.db.WithContext(ctx).
		Where("ballot_id = ?", row.BallotID).
		Where("write_in = ?", true).
		Where("first_name = ?", row.FirstName).
		Where("last_name = ?", row.LastName).
		First(&existing).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, tx.repo.logError("election_repo_get_write_in_failed", err,
			"ballot_id", row.BallotID,
		)
	}
	return existing.toEntity(), nil
}

func (tx *voteTx) CreateSelection(ctx context.Context, selection entities.Selection) error {
	row := selectionModelFromEntity(selection)
	if err := tx.db.WithContext(ctx).Create(&row).Error; err != nil {
		return tx.repo.logError("election_repo_create_selection_failed", err,
			"selection_id", row.ID,
			"ballot_id", row.BallotID,
			"candidate_id", row.CandidateID,
		)
	}
	return nil
}

func hasVoted(ctx context.Context, db *gorm.DB, electionID string, voterID string, repo *Repository) (bool, error) {
	if voterID == "" {
		return false, nil
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&voteModel{}).
		Where("election_id = ?", electionID).
		Where("voter_id = ?", voterID).
		Count(&count).
		Error
	if err != nil {
		return false, repo.logError("election_repo_has_voted_failed", err,
			"election_id", electionID,
			"voter_id", voterID,
		)
	}
	return count > 0, nil
}

var _ ports.VoteTransaction = (*voteTx)(nil)
