package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	electionservice "elect/contexts/governance/election-service"
	"elect/contexts/governance/election-service/domain/entities"
	electionhttp "elect/contexts/governance/election-service/transport/http"
)

var votingDay = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestModule() electionservice.Module {
	module := electionservice.NewInMemoryModule([]entities.Election{{
		ElectionID:    "election-1",
		Name:          "Board 2026",
		VoteStart:     votingDay.AddDate(0, 0, -1),
		VoteEnd:       votingDay.AddDate(0, 0, 1),
		AllowedVoters: []string{"voter-1", "voter-2"},
	}}, slog.Default())
	module.Store.SetNow(votingDay)
	module.Store.SetBallot(entities.Ballot{
		BallotID:       "ballot-1",
		ElectionID:     "election-1",
		PositionNumber: 1,
		Description:    "Chair",
		Type:           entities.BallotTypePlurality,
		SeatsAvailable: 1,
	})
	module.Store.SetCandidate(entities.Candidate{CandidateID: "cand-1", BallotID: "ballot-1", FirstName: "Ann", LastName: "Able"})
	module.Store.SetCandidate(entities.Candidate{CandidateID: "cand-2", BallotID: "ballot-1", FirstName: "Ben", LastName: "Baker"})
	return module
}

func newTestServer() *Server {
	return New(newTestModule(), []string{"admin-1"}, slog.Default(), ":0")
}

func serve(server *Server, method string, target string, userID string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestSubmitVoteRequiresUser(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/v1/elections/latest/votes", "", `{"ballots":[]}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitVoteRejectsInvalidJSON(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/v1/elections/election-1/votes", "voter-1", `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitVoteAcceptsOnceThenForbids(t *testing.T) {
	server := newTestServer()
	body := `{"ballots":[{"ballot_id":"ballot-1","selected":["cand-1"]}]}`

	rr := serve(server, http.MethodPost, "/v1/elections/latest/votes", "voter-1", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp electionhttp.SubmitVoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Accepted || resp.VoteID == "" || resp.Selections != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	rr = serve(server, http.MethodPost, "/v1/elections/election-1/votes", "voter-1", body)
	if rr.Code != http.StatusForbidden || !strings.Contains(rr.Body.String(), "already_voted") {
		t.Fatalf("expected 403 already_voted, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitVoteRejectsVoterOutsideAllowList(t *testing.T) {
	server := newTestServer()
	body := `{"ballots":[{"ballot_id":"ballot-1","selected":["cand-1"]}]}`
	rr := serve(server, http.MethodPost, "/v1/elections/election-1/votes", "stranger", body)
	if rr.Code != http.StatusForbidden || !strings.Contains(rr.Body.String(), "voter_not_allowed") {
		t.Fatalf("expected 403 voter_not_allowed, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitVoteReturnsBallotErrors(t *testing.T) {
	server := newTestServer()
	body := `{"ballots":[{"ballot_id":"ballot-1","selected":["cand-1","cand-2"]}]}`
	rr := serve(server, http.MethodPost, "/v1/elections/election-1/votes", "voter-1", body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp electionhttp.SubmitVoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Accepted || len(resp.Errors["ballot-1"]) != 1 {
		t.Fatalf("expected one ballot error, got %+v", resp)
	}

	rr = serve(server, http.MethodGet, "/v1/elections/election-1/eligibility", "voter-1", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"voting_open":true`) {
		t.Fatalf("rejected submission must not consume eligibility, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestElectionSheetUnknownElection(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodGet, "/v1/elections/missing", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestElectionSheetLatest(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodGet, "/v1/elections/latest", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp electionhttp.ElectionSheetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Election.ElectionID != "election-1" || len(resp.Ballots) != 1 || len(resp.Ballots[0].Candidates) != 2 {
		t.Fatalf("unexpected sheet: %+v", resp)
	}
}

func TestStatsRequireAdmin(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodGet, "/v1/ballots/ballot-1/stats", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, http.MethodGet, "/v1/ballots/ballot-1/stats", "voter-1", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, http.MethodGet, "/v1/ballots/ballot-1/stats", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestExportReportCSV(t *testing.T) {
	server := newTestServer()
	serve(server, http.MethodPost, "/v1/elections/latest/votes", "voter-2", `{"ballots":[{"ballot_id":"ballot-1","selected":["cand-2"]}]}`)

	rr := serve(server, http.MethodGet, "/v1/elections/latest/report.csv", "admin-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("expected csv content type, got %s", got)
	}
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 2 || lines[1] != "voter-2,0,1" {
		t.Fatalf("unexpected csv: %q", rr.Body.String())
	}
}

func TestAdminCreatesElectionAndBallot(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/v1/admin/elections", "admin-1",
		`{"name":"Board 2027","vote_start":"2027-10-18","vote_end":"2027-10-20"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var election electionhttp.ElectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &election); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = serve(server, http.MethodPost, "/v1/admin/elections/"+election.ElectionID+"/ballots", "admin-1",
		`{"description":"Treasurer","type":"Xx","seats_available":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown ballot type, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = serve(server, http.MethodPost, "/v1/admin/elections", "admin-1",
		`{"name":"Board 2027","vote_start":"2027-10-18","vote_end":"2027-10-20"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDisassociateWhileOpenConflicts(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/v1/admin/elections/election-1/disassociate", "admin-1", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}
