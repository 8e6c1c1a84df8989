package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists elections and votes through gorm. Expected schema:
// elections.name is unique, election_votes has a unique index on
// (election_id, voter_id), and election_candidates has a partial unique
// index on (ballot_id, first_name, last_name) WHERE write_in.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrConflict
			}
			return r.logError("election_repo_create_election_failed", err,
				"election_id", row.ID,
				"name", row.Name,
			)
		}
		return replaceAllowedVoters(tx, row.ID, election.AllowedVoters)
	})
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("election_repo_get_election_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	return r.withAllowedVoters(ctx, r.db, row)
}

func (r *Repository) GetLatestElection(ctx context.Context) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Order("vote_start DESC").
		Order("id DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrNoElections
		}
		return entities.Election{}, r.logError("election_repo_get_latest_election_failed", err)
	}
	return r.withAllowedVoters(ctx, r.db, row)
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).Order("vote_start ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("election_repo_list_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		election, err := r.withAllowedVoters(ctx, r.db, row)
		if err != nil {
			return nil, err
		}
		items = append(items, election)
	}
	return items, nil
}

func (r *Repository) SetAllowedVoters(ctx context.Context, electionID string, voterIDs []string) error {
	electionID = strings.TrimSpace(electionID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&electionModel{}).Where("id = ?", electionID).Count(&count).Error; err != nil {
			return r.logError("election_repo_set_allowed_voters_failed", err, "election_id", electionID)
		}
		if count == 0 {
			return domainerrors.ErrElectionNotFound
		}
		if err := replaceAllowedVoters(tx, electionID, voterIDs); err != nil {
			return r.logError("election_repo_set_allowed_voters_failed", err, "election_id", electionID)
		}
		return nil
	})
}

func (r *Repository) CreateBallot(ctx context.Context, ballot entities.Ballot) error {
	row := ballotModelFromEntity(ballot)
	var count int64
	if err := r.db.WithContext(ctx).Model(&electionModel{}).Where("id = ?", row.ElectionID).Count(&count).Error; err != nil {
		return r.logError("election_repo_create_ballot_failed", err, "election_id", row.ElectionID)
	}
	if count == 0 {
		return domainerrors.ErrElectionNotFound
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("election_repo_create_ballot_failed", err,
			"ballot_id", row.ID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (r *Repository) GetBallot(ctx context.Context, ballotID string) (entities.Ballot, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(ballotID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, domainerrors.ErrBallotNotFound
		}
		return entities.Ballot{}, r.logError("election_repo_get_ballot_failed", err, "ballot_id", strings.TrimSpace(ballotID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListBallots(ctx context.Context, electionID string) ([]entities.Ballot, error) {
	var rows []ballotModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("position_number ASC").
		Order("type ASC").
		Order("description ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_ballots_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	items := make([]entities.Ballot, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	entities.SortBallots(items)
	return items, nil
}

func (r *Repository) CreateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	var count int64
	if err := r.db.WithContext(ctx).Model(&ballotModel{}).Where("id = ?", row.BallotID).Count(&count).Error; err != nil {
		return r.logError("election_repo_create_candidate_failed", err, "ballot_id", row.BallotID)
	}
	if count == 0 {
		return domainerrors.ErrBallotNotFound
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("election_repo_create_candidate_failed", err,
			"candidate_id", row.ID,
			"ballot_id", row.BallotID,
		)
	}
	return nil
}

func (r *Repository) ListCandidates(ctx context.Context, ballotID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("ballot_id = ?", strings.TrimSpace(ballotID)).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_failed", err, "ballot_id", strings.TrimSpace(ballotID))
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) ListCandidatesByElection(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	electionID = strings.TrimSpace(electionID)
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("ballot_id IN (?)", r.ballotIDs(ctx, electionID)).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_by_election_failed", err, "election_id", electionID)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) withAllowedVoters(ctx context.Context, db *gorm.DB, row electionModel) (entities.Election, error) {
	var voters []allowedVoterModel
	err := db.WithContext(ctx).
		Where("election_id = ?", row.ID).
		Order("voter_id ASC").
		Find(&voters).
		Error
	if err != nil {
		return entities.Election{}, r.logError("election_repo_list_allowed_voters_failed", err, "election_id", row.ID)
	}
	allowed := make([]string, 0, len(voters))
	for _, voter := range voters {
		allowed = append(allowed, voter.VoterID)
	}
	return row.toEntity(allowed), nil
}

func (r *Repository) ballotIDs(ctx context.Context, electionID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ballotModel{}).
		Select("id").
		Where("election_id = ?", electionID)
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "governance/election-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

func replaceAllowedVoters(tx *gorm.DB, electionID string, voterIDs []string) error {
	if err := tx.Where("election_id = ?", electionID).Delete(&allowedVoterModel{}).Error; err != nil {
		return err
	}
	if len(voterIDs) == 0 {
		return nil
	}
	rows := make([]allowedVoterModel, 0, len(voterIDs))
	for _, voterID := range voterIDs {
		voterID = strings.TrimSpace(voterID)
		if voterID == "" {
			continue
		}
		rows = append(rows, allowedVoterModel{ElectionID: electionID, VoterID: voterID})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func toCandidateEntities(rows []candidateModel) []entities.Candidate {
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	entities.SortCandidates(items)
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
