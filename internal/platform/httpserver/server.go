package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	electionservice "elect/contexts/governance/election-service"
	electionerrors "elect/contexts/governance/election-service/domain/errors"
	electionhttp "elect/contexts/governance/election-service/transport/http"

	_ "elect/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// latestElection is accepted wherever an election id is expected.
const latestElection = "latest"

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	elections electionservice.Module
	admins    map[string]struct{}
}

func New(
	elections electionservice.Module,
	adminUserIDs []string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		elections: elections,
		admins:    admins,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /v1/elections", s.handleListElections)
	s.mux.HandleFunc("GET /v1/elections/{election_id}", s.handleElectionSheet)
	s.mux.HandleFunc("GET /v1/elections/{election_id}/eligibility", s.handleEligibility)
	s.mux.HandleFunc("POST /v1/elections/{election_id}/votes", s.handleSubmitVote)
	s.mux.HandleFunc("GET /v1/biographies", s.handleBiographies)

	s.mux.HandleFunc("GET /v1/elections/{election_id}/stats", s.requireAdmin(s.handleElectionStats))
	s.mux.HandleFunc("GET /v1/elections/{election_id}/report", s.requireAdmin(s.handleElectionReport))
	s.mux.HandleFunc("GET /v1/elections/{election_id}/report.csv", s.requireAdmin(s.handleExportReport))
	s.mux.HandleFunc("GET /v1/ballots/{ballot_id}/stats", s.requireAdmin(s.handleBallotStats))
	s.mux.HandleFunc("GET /v1/votes/{vote_id}", s.requireAdmin(s.handleVoteDetails))

	s.mux.HandleFunc("POST /v1/admin/elections", s.requireAdmin(s.handleCreateElection))
	s.mux.HandleFunc("POST /v1/admin/elections/{election_id}/ballots", s.requireAdmin(s.handleAddBallot))
	s.mux.HandleFunc("PUT /v1/admin/elections/{election_id}/allowed-voters", s.requireAdmin(s.handleSetAllowedVoters))
	s.mux.HandleFunc("POST /v1/admin/elections/{election_id}/disassociate", s.requireAdmin(s.handleDisassociate))
	s.mux.HandleFunc("POST /v1/admin/ballots/{ballot_id}/candidates", s.requireAdmin(s.handleAddCandidate))
}

// requireAdmin admits callers whose X-User-Id is on the configured admin list.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if userID == "" {
			writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
			return
		}
		if _, ok := s.admins[userID]; !ok {
			s.logger.Warn("admin route denied",
				"event", "http_admin_denied",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"user_id", userID,
				"path", r.URL.Path,
			)
			writeElectionError(w, http.StatusForbidden, "forbidden", "election administrator role is required")
			return
		}
		next(w, r)
	}
}

// @Summary List elections
// @Tags elections
// @Produce json
// @Success 200 {object} electionhttp.ElectionListResponse
// @Router /v1/elections [get]
func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Ballot sheet of an election
// @Description Use "latest" as election_id for the most recent election.
// @Tags elections
// @Produce json
// @Param election_id path string true "Election ID or latest"
// @Success 200 {object} electionhttp.ElectionSheetResponse
// @Failure 404 {object} electionhttp.ErrorResponse
// @Router /v1/elections/{election_id} [get]
func (s *Server) handleElectionSheet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.ElectionSheetHandler(r.Context(), electionIDFromPath(r))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Whether the caller may vote now
// @Tags votes
// @Produce json
// @Param election_id path string true "Election ID or latest"
// @Param X-User-Id header string true "Voter ID"
// @Success 200 {object} electionhttp.EligibilityResponse
// @Router /v1/elections/{election_id}/eligibility [get]
func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	voterID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if voterID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.elections.Handler.EligibilityHandler(r.Context(), electionIDFromPath(r), voterID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Submit a vote
// @Description Rejected ballots come back with 422 and per-ballot messages; nothing is recorded.
// @Tags votes
// @Accept json
// @Produce json
// @Param election_id path string true "Election ID or latest"
// @Param X-User-Id header string true "Voter ID"
// @Param request body electionhttp.SubmitVoteRequest true "Ballot answers"
// @Success 201 {object} electionhttp.SubmitVoteResponse
// @Failure 403 {object} electionhttp.ErrorResponse
// @Failure 422 {object} electionhttp.SubmitVoteResponse
// @Router /v1/elections/{election_id}/votes [post]
func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	voterID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if voterID == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req electionhttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.elections.Handler.SubmitVoteHandler(r.Context(), voterID, electionIDFromPath(r), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	if !resp.Accepted {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary Candidate biographies of the latest election
// @Tags elections
// @Produce json
// @Success 200 {object} electionhttp.BiographiesResponse
// @Router /v1/biographies [get]
func (s *Server) handleBiographies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.BiographiesHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Ranked totals for every ballot of an election
// @Tags statistics
// @Produce json
// @Param election_id path string true "Election ID or latest"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {object} electionhttp.ElectionStatsResponse
// @Router /v1/elections/{election_id}/stats [get]
func (s *Server) handleElectionStats(w http.ResponseWriter, r *http.Request) {
	electionID, err := s.resolveElectionID(r)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	resp, err := s.elections.Handler.ElectionStatsHandler(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Per-vote contribution matrix
// @Tags statistics
// @Produce json
// @Param election_id path string true "Election ID or latest"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {object} electionhttp.ElectionReportResponse
// @Router /v1/elections/{election_id}/report [get]
func (s *Server) handleElectionReport(w http.ResponseWriter, r *http.Request) {
	electionID, err := s.resolveElectionID(r)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	resp, err := s.elections.Handler.ElectionReportHandler(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Full report as CSV
// @Tags statistics
// @Produce text/csv
// @Param election_id path string true "Election ID or latest"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {string} string
// @Router /v1/elections/{election_id}/report.csv [get]
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	electionID, err := s.resolveElectionID(r)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	// Buffer first so a failing report can still produce a JSON error.
	var buf strings.Builder
	if err := s.elections.Handler.ExportReportHandler(r.Context(), electionID, &buf); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="election-`+electionID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(buf.String()))
}

// @Summary Ranked totals for one ballot
// @Tags statistics
// @Produce json
// @Param ballot_id path string true "Ballot ID"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {object} electionhttp.BallotStatsResponse
// @Router /v1/ballots/{ballot_id}/stats [get]
func (s *Server) handleBallotStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.BallotStatsHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Choices recorded for one vote
// @Tags statistics
// @Produce json
// @Param vote_id path string true "Vote ID"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {object} electionhttp.VoteDetailsResponse
// @Router /v1/votes/{vote_id} [get]
func (s *Server) handleVoteDetails(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.VoteDetailsHandler(r.Context(), r.PathValue("vote_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Create an election
// @Tags admin
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Administrator ID"
// @Param request body electionhttp.CreateElectionRequest true "Election"
// @Success 201 {object} electionhttp.ElectionResponse
// @Router /v1/admin/elections [post]
func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.CreateElectionHandler(r.Context(), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary Add a ballot to an election
// @Tags admin
// @Accept json
// @Produce json
// @Param election_id path string true "Election ID"
// @Param X-User-Id header string true "Administrator ID"
// @Param request body electionhttp.AddBallotRequest true "Ballot"
// @Success 201 {object} electionhttp.BallotResponse
// @Router /v1/admin/elections/{election_id}/ballots [post]
func (s *Server) handleAddBallot(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.AddBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.AddBallotHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary Add a candidate to a ballot
// @Tags admin
// @Accept json
// @Produce json
// @Param ballot_id path string true "Ballot ID"
// @Param X-User-Id header string true "Administrator ID"
// @Param request body electionhttp.AddCandidateRequest true "Candidate"
// @Success 201 {object} electionhttp.CandidateResponse
// @Router /v1/admin/ballots/{ballot_id}/candidates [post]
func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.AddCandidateHandler(r.Context(), r.PathValue("ballot_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary Replace the allow-list of an election
// @Tags admin
// @Accept json
// @Produce json
// @Param election_id path string true "Election ID"
// @Param X-User-Id header string true "Administrator ID"
// @Param request body electionhttp.SetAllowedVotersRequest true "Voter IDs; empty admits everyone"
// @Success 200 {object} electionhttp.ElectionResponse
// @Router /v1/admin/elections/{election_id}/allowed-voters [put]
func (s *Server) handleSetAllowedVoters(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.SetAllowedVotersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.SetAllowedVotersHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Unlink votes from voters after the election closed
// @Tags admin
// @Produce json
// @Param election_id path string true "Election ID"
// @Param X-User-Id header string true "Administrator ID"
// @Success 200 {object} electionhttp.DisassociateResponse
// @Failure 409 {object} electionhttp.ErrorResponse
// @Router /v1/admin/elections/{election_id}/disassociate [post]
func (s *Server) handleDisassociate(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.DisassociateHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveElectionID turns "latest" into a concrete id for handlers that
// require one.
func (s *Server) resolveElectionID(r *http.Request) (string, error) {
	electionID := electionIDFromPath(r)
	if electionID != "" {
		return electionID, nil
	}
	resp, err := s.elections.Handler.ElectionSheetHandler(r.Context(), "")
	if err != nil {
		return "", err
	}
	return resp.Election.ElectionID, nil
}

func electionIDFromPath(r *http.Request) string {
	electionID := strings.TrimSpace(r.PathValue("election_id"))
	if strings.EqualFold(electionID, latestElection) {
		return ""
	}
	return electionID
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrVotingClosed):
		writeElectionError(w, http.StatusForbidden, "voting_closed", err.Error())
	case errors.Is(err, electionerrors.ErrVoterNotAllowed):
		writeElectionError(w, http.StatusForbidden, "voter_not_allowed", err.Error())
	case errors.Is(err, electionerrors.ErrAlreadyVoted):
		writeElectionError(w, http.StatusForbidden, "already_voted", err.Error())
	case errors.Is(err, electionerrors.ErrNotEligible):
		writeElectionError(w, http.StatusForbidden, "not_eligible", err.Error())
	case errors.Is(err, electionerrors.ErrElectionNotFound),
		errors.Is(err, electionerrors.ErrNoElections):
		writeElectionError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrBallotNotFound):
		writeElectionError(w, http.StatusNotFound, "ballot_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrCandidateNotFound):
		writeElectionError(w, http.StatusNotFound, "candidate_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrVoteNotFound):
		writeElectionError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrConflict):
		writeElectionError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, electionerrors.ErrVotingStillOpen):
		writeElectionError(w, http.StatusConflict, "voting_still_open", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidElectionInput),
		errors.Is(err, electionerrors.ErrInvalidBallotInput),
		errors.Is(err, electionerrors.ErrInvalidCandidateInput),
		errors.Is(err, electionerrors.ErrInvalidSubmission),
		errors.Is(err, electionerrors.ErrUnknownBallotType):
		writeElectionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
