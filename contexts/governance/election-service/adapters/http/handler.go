package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"elect/contexts/governance/election-service/application/commands"
	"elect/contexts/governance/election-service/application/queries"
	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	httptransport "elect/contexts/governance/election-service/transport/http"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Votes     commands.VoteUseCase
	Admin     commands.AdminUseCase
	Elections queries.ElectionQueryUseCase
	Tallies   queries.TallyUseCase
	Logger    *slog.Logger
}

func (h Handler) SubmitVoteHandler(
	ctx context.Context,
	voterID string,
	electionID string,
	req httptransport.SubmitVoteRequest,
) (httptransport.SubmitVoteResponse, error) {
	ballots := make([]entities.BallotSubmission, 0, len(req.Ballots))
	for _, item := range req.Ballots {
		submission := entities.BallotSubmission{
			BallotID: item.BallotID,
			Selected: item.Selected,
			Points:   item.Points,
		}
		if item.WriteIn != nil {
			submission.WriteIn = &entities.WriteIn{
				FirstName: item.WriteIn.FirstName,
				LastName:  item.WriteIn.LastName,
				Points:    item.WriteIn.Points,
			}
		}
		ballots = append(ballots, submission)
	}

	result, err := h.Votes.SubmitVote(ctx, commands.SubmitVoteCommand{
		ElectionID: electionID,
		VoterID:    voterID,
		Ballots:    ballots,
	})
	if err != nil {
		return httptransport.SubmitVoteResponse{}, err
	}
	if !result.Accepted {
		return httptransport.SubmitVoteResponse{
			Errors: result.Errors,
			Notice: result.Notice,
		}, nil
	}
	return httptransport.SubmitVoteResponse{
		Accepted:   true,
		VoteID:     result.Vote.VoteID,
		ElectionID: result.Vote.ElectionID,
		Selections: len(result.Selections),
	}, nil
}

func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	items, err := h.Elections.ListElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	resp := httptransport.ElectionListResponse{Items: make([]httptransport.ElectionResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapElection(item))
	}
	return resp, nil
}

// ElectionSheetHandler returns the ballot sheet. An empty electionID
// targets the latest election.
func (h Handler) ElectionSheetHandler(ctx context.Context, electionID string) (httptransport.ElectionSheetResponse, error) {
	sheet, err := h.Elections.Sheet(ctx, electionID)
	if err != nil {
		return httptransport.ElectionSheetResponse{}, err
	}
	resp := httptransport.ElectionSheetResponse{
		Election: mapElection(sheet.Election),
		Ballots:  make([]httptransport.BallotResponse, 0, len(sheet.Ballots)),
	}
	for _, listing := range sheet.Ballots {
		ballot := mapBallot(listing.Ballot)
		ballot.Exclusive = listing.Exclusive
		ballot.HasIncumbents = listing.HasIncumbents
		ballot.Candidates = mapCandidates(listing.Candidates)
		resp.Ballots = append(resp.Ballots, ballot)
	}
	return resp, nil
}

func (h Handler) EligibilityHandler(ctx context.Context, electionID string, voterID string) (httptransport.EligibilityResponse, error) {
	open, err := h.Elections.IsVotingOpenFor(ctx, electionID, voterID)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	if strings.TrimSpace(electionID) == "" {
		latest, err := h.Elections.LatestElection(ctx)
		if err != nil {
			return httptransport.EligibilityResponse{}, err
		}
		electionID = latest.ElectionID
	}
	return httptransport.EligibilityResponse{
		ElectionID: strings.TrimSpace(electionID),
		VoterID:    strings.TrimSpace(voterID),
		VotingOpen: open,
	}, nil
}

func (h Handler) BiographiesHandler(ctx context.Context) (httptransport.BiographiesResponse, error) {
	election, ballots, err := h.Elections.Biographies(ctx)
	if err != nil {
		return httptransport.BiographiesResponse{}, err
	}
	resp := httptransport.BiographiesResponse{
		Election: mapElection(election),
		Ballots:  make([]httptransport.BallotResponse, 0, len(ballots)),
	}
	for _, item := range ballots {
		ballot := mapBallot(item.Ballot)
		ballot.Candidates = mapCandidates(item.Candidates)
		resp.Ballots = append(resp.Ballots, ballot)
	}
	return resp, nil
}

func (h Handler) BallotStatsHandler(ctx context.Context, ballotID string) (httptransport.BallotStatsResponse, error) {
	stats, err := h.Tallies.BallotStats(ctx, ballotID)
	if err != nil {
		return httptransport.BallotStatsResponse{}, err
	}
	return mapBallotStats(stats), nil
}

func (h Handler) ElectionStatsHandler(ctx context.Context, electionID string) (httptransport.ElectionStatsResponse, error) {
	election, stats, err := h.Tallies.ElectionStats(ctx, electionID)
	if err != nil {
		return httptransport.ElectionStatsResponse{}, err
	}
	resp := httptransport.ElectionStatsResponse{
		ElectionID: election.ElectionID,
		Name:       election.Name,
		Ballots:    make([]httptransport.BallotStatsResponse, 0, len(stats)),
	}
	for _, item := range stats {
		resp.Ballots = append(resp.Ballots, mapBallotStats(item))
	}
	return resp, nil
}

func (h Handler) ElectionReportHandler(ctx context.Context, electionID string) (httptransport.ElectionReportResponse, error) {
	report, err := h.Tallies.ElectionFullReport(ctx, electionID)
	if err != nil {
		return httptransport.ElectionReportResponse{}, err
	}
	resp := httptransport.ElectionReportResponse{
		ElectionID: report.Election.ElectionID,
		Candidates: mapCandidates(report.Candidates),
		Rows:       make([]httptransport.ReportRow, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, httptransport.ReportRow{
			VoteID:  row.Vote.VoteID,
			VoterID: row.Vote.VoterID,
			Points:  row.Points,
		})
	}
	return resp, nil
}

// ExportReportHandler streams the full report as CSV into w.
func (h Handler) ExportReportHandler(ctx context.Context, electionID string, w io.Writer) error {
	report, err := h.Tallies.ElectionFullReport(ctx, electionID)
	if err != nil {
		return err
	}
	return queries.WriteReportCSV(w, report)
}

func (h Handler) VoteDetailsHandler(ctx context.Context, voteID string) (httptransport.VoteDetailsResponse, error) {
	details, err := h.Tallies.VoteDetails(ctx, voteID)
	if err != nil {
		return httptransport.VoteDetailsResponse{}, err
	}
	resp := httptransport.VoteDetailsResponse{
		VoteID:     details.Vote.VoteID,
		ElectionID: details.Vote.ElectionID,
		VoterID:    details.Vote.VoterID,
		Ballots:    make([]httptransport.VoteDetailBallot, 0, len(details.Ballots)),
	}
	for _, item := range details.Ballots {
		resp.Ballots = append(resp.Ballots, httptransport.VoteDetailBallot{
			BallotID:    item.Ballot.BallotID,
			Description: item.Ballot.Description,
			Type:        string(item.Ballot.Type),
			Choices:     mapScores(item.Choices),
		})
	}
	return resp, nil
}

func (h Handler) CreateElectionHandler(
	ctx context.Context,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	start, err := parseDate(req.VoteStart)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	end, err := parseDate(req.VoteEnd)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	election, err := h.Admin.CreateElection(ctx, commands.CreateElectionCommand{
		Name:          req.Name,
		Introduction:  req.Introduction,
		VoteStart:     start,
		VoteEnd:       end,
		AllowedVoters: req.AllowedVoters,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) AddBallotHandler(
	ctx context.Context,
	electionID string,
	req httptransport.AddBallotRequest,
) (httptransport.BallotResponse, error) {
	ballot, err := h.Admin.AddBallot(ctx, commands.AddBallotCommand{
		ElectionID:       electionID,
		PositionNumber:   req.PositionNumber,
		Description:      req.Description,
		Introduction:     req.Introduction,
		Type:             entities.BallotType(strings.TrimSpace(req.Type)),
		SeatsAvailable:   req.SeatsAvailable,
		IsSecret:         req.IsSecret,
		WriteInAvailable: req.WriteInAvailable,
	})
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return mapBallot(ballot), nil
}

func (h Handler) AddCandidateHandler(
	ctx context.Context,
	ballotID string,
	req httptransport.AddCandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Admin.AddCandidate(ctx, commands.AddCandidateCommand{
		BallotID:    ballotID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Institution: req.Institution,
		Incumbent:   req.Incumbent,
		ImageURL:    req.ImageURL,
		Biography:   req.Biography,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) SetAllowedVotersHandler(
	ctx context.Context,
	electionID string,
	req httptransport.SetAllowedVotersRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Admin.SetAllowedVoters(ctx, electionID, req.VoterIDs)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) DisassociateHandler(ctx context.Context, electionID string) (httptransport.DisassociateResponse, error) {
	affected, err := h.Admin.DisassociateVoters(ctx, electionID)
	if err != nil {
		return httptransport.DisassociateResponse{}, err
	}
	return httptransport.DisassociateResponse{
		ElectionID: strings.TrimSpace(electionID),
		Affected:   affected,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domainerrors.ErrInvalidElectionInput
	}
	return parsed, nil
}

func mapElection(election entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:    election.ElectionID,
		Name:          election.Name,
		Introduction:  election.Introduction,
		VoteStart:     election.VoteStart.Format(dateLayout),
		VoteEnd:       election.VoteEnd.Format(dateLayout),
		AllowedVoters: election.AllowedVoters,
	}
}

func mapBallot(ballot entities.Ballot) httptransport.BallotResponse {
	return httptransport.BallotResponse{
		BallotID:         ballot.BallotID,
		ElectionID:       ballot.ElectionID,
		PositionNumber:   ballot.PositionNumber,
		Description:      ballot.Description,
		Introduction:     ballot.Introduction,
		Type:             string(ballot.Type),
		TypeLabel:        ballot.Type.Label(),
		SeatsAvailable:   ballot.SeatsAvailable,
		IsSecret:         ballot.IsSecret,
		WriteInAvailable: ballot.WriteInAvailable,
	}
}

func mapCandidate(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID: candidate.CandidateID,
		BallotID:    candidate.BallotID,
		FirstName:   candidate.FirstName,
		LastName:    candidate.LastName,
		DisplayName: candidate.DisplayName(),
		Institution: candidate.Institution,
		Incumbent:   candidate.Incumbent,
		ImageURL:    candidate.ImageURL,
		Biography:   candidate.Biography,
		WriteIn:     candidate.WriteIn,
	}
}

func mapCandidates(candidates []entities.Candidate) []httptransport.CandidateResponse {
	items := make([]httptransport.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, mapCandidate(candidate))
	}
	return items
}

func mapBallotStats(stats entities.BallotStats) httptransport.BallotStatsResponse {
	return httptransport.BallotStatsResponse{
		BallotID:    stats.Ballot.BallotID,
		Description: stats.Ballot.Description,
		Type:        string(stats.Ballot.Type),
		Items:       mapScores(stats.Scores),
	}
}

// mapScores assigns ranks in list order; equal scores share a rank.
func mapScores(scores []entities.CandidateScore) []httptransport.CandidateScoreItem {
	items := make([]httptransport.CandidateScoreItem, 0, len(scores))
	rank := 0
	for i, score := range scores {
		if i == 0 || score.Score != scores[i-1].Score {
			rank = i + 1
		}
		items = append(items, httptransport.CandidateScoreItem{
			CandidateID: score.Candidate.CandidateID,
			DisplayName: score.Candidate.DisplayName(),
			WriteIn:     score.Candidate.WriteIn,
			Score:       score.Score,
			Rank:        rank,
		})
	}
	return items
}
