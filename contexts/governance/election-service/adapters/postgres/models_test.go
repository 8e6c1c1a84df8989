package postgresadapter

import (
	"errors"
	"fmt"
	"testing"

	"elect/contexts/governance/election-service/domain/entities"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestSecretSelectionStoresNullVote(t *testing.T) {
	selection := entities.Selection{
		SelectionID: "s1",
		VoteID:      "v1",
		BallotID:    "b1",
		BallotType:  entities.BallotTypePlurality,
		CandidateID: "c1",
	}.DetachVoter()

	row := selectionModelFromEntity(selection)
	if row.VoteID != nil {
		t.Fatalf("detached selection must store NULL vote_id, got %q", *row.VoteID)
	}
	if got := row.toEntity(); got.Linked() {
		t.Fatalf("expected unlinked selection, got %+v", got)
	}
}

func TestDisassociatedVoteStoresNullVoter(t *testing.T) {
	row := voteModelFromEntity(entities.Vote{VoteID: "v1", ElectionID: "e1", VoterID: "  "})
	if row.VoterID != nil {
		t.Fatalf("blank voter must store NULL voter_id")
	}
	if !row.toEntity().Disassociated() {
		t.Fatalf("expected disassociated vote")
	}
	if row.CreatedAt.IsZero() {
		t.Fatalf("created_at must default to now")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert vote: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(wrapped) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain errors are not unique violations")
	}
}
