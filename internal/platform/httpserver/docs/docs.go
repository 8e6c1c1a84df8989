// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/platform/httpserver/server.go -o internal/platform/httpserver/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/elections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["elections"],
                "summary": "List elections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ElectionListResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}": {
            "get": {
                "description": "Use \"latest\" as election_id for the most recent election.",
                "produces": ["application/json"],
                "tags": ["elections"],
                "summary": "Ballot sheet of an election",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ElectionSheetResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}/eligibility": {
            "get": {
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Whether the caller may vote now",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Voter ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.EligibilityResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}/votes": {
            "post": {
                "description": "Rejected ballots come back with 422 and per-ballot messages; nothing is recorded.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Submit a vote",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Voter ID", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Ballot answers", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SubmitVoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.SubmitVoteResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.SubmitVoteResponse"}}
                }
            }
        },
        "/v1/biographies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["elections"],
                "summary": "Candidate biographies of the latest election",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BiographiesResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Ranked totals for every ballot of an election",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ElectionStatsResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}/report": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Per-vote contribution matrix",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ElectionReportResponse"}}
                }
            }
        },
        "/v1/elections/{election_id}/report.csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["statistics"],
                "summary": "Full report as CSV",
                "parameters": [
                    {"type": "string", "description": "Election ID or latest", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/v1/ballots/{ballot_id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Ranked totals for one ballot",
                "parameters": [
                    {"type": "string", "description": "Ballot ID", "name": "ballot_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BallotStatsResponse"}}
                }
            }
        },
        "/v1/votes/{vote_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Choices recorded for one vote",
                "parameters": [
                    {"type": "string", "description": "Vote ID", "name": "vote_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VoteDetailsResponse"}}
                }
            }
        },
        "/v1/admin/elections": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create an election",
                "parameters": [
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Election", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CreateElectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.ElectionResponse"}}
                }
            }
        },
        "/v1/admin/elections/{election_id}/ballots": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a ballot to an election",
                "parameters": [
                    {"type": "string", "description": "Election ID", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Ballot", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AddBallotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.BallotResponse"}}
                }
            }
        },
        "/v1/admin/ballots/{ballot_id}/candidates": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a candidate to a ballot",
                "parameters": [
                    {"type": "string", "description": "Ballot ID", "name": "ballot_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Candidate", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AddCandidateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CandidateResponse"}}
                }
            }
        },
        "/v1/admin/elections/{election_id}/allowed-voters": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Replace the allow-list of an election",
                "parameters": [
                    {"type": "string", "description": "Election ID", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true},
                    {"description": "Voter IDs; empty admits everyone", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SetAllowedVotersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ElectionResponse"}}
                }
            }
        },
        "/v1/admin/elections/{election_id}/disassociate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Unlink votes from voters after the election closed",
                "parameters": [
                    {"type": "string", "description": "Election ID", "name": "election_id", "in": "path", "required": true},
                    {"type": "string", "description": "Administrator ID", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DisassociateResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "http.WriteInRequest": {
            "type": "object",
            "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "points": {"type": "integer"}}
        },
        "http.BallotSubmissionRequest": {
            "type": "object",
            "properties": {
                "ballot_id": {"type": "string"},
                "selected": {"type": "array", "items": {"type": "string"}},
                "points": {"type": "object", "additionalProperties": {"type": "integer"}},
                "write_in": {"$ref": "#/definitions/http.WriteInRequest"}
            }
        },
        "http.SubmitVoteRequest": {
            "type": "object",
            "properties": {"ballots": {"type": "array", "items": {"$ref": "#/definitions/http.BallotSubmissionRequest"}}}
        },
        "http.SubmitVoteResponse": {
            "type": "object",
            "properties": {
                "accepted": {"type": "boolean"},
                "vote_id": {"type": "string"},
                "election_id": {"type": "string"},
                "selections": {"type": "integer"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "notice": {"type": "string"}
            }
        },
        "http.ElectionResponse": {
            "type": "object",
            "properties": {
                "election_id": {"type": "string"},
                "name": {"type": "string"},
                "introduction": {"type": "string"},
                "vote_start": {"type": "string"},
                "vote_end": {"type": "string"},
                "allowed_voters": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.ElectionListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/http.ElectionResponse"}}}
        },
        "http.CandidateResponse": {
            "type": "object",
            "properties": {
                "candidate_id": {"type": "string"},
                "ballot_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "display_name": {"type": "string"},
                "institution": {"type": "string"},
                "incumbent": {"type": "boolean"},
                "image_url": {"type": "string"},
                "biography": {"type": "string"},
                "write_in": {"type": "boolean"}
            }
        },
        "http.BallotResponse": {
            "type": "object",
            "properties": {
                "ballot_id": {"type": "string"},
                "election_id": {"type": "string"},
                "position_number": {"type": "integer"},
                "description": {"type": "string"},
                "introduction": {"type": "string"},
                "type": {"type": "string", "enum": ["Pl", "Pr"]},
                "type_label": {"type": "string"},
                "seats_available": {"type": "integer"},
                "is_secret": {"type": "boolean"},
                "write_in_available": {"type": "boolean"},
                "exclusive": {"type": "boolean"},
                "has_incumbents": {"type": "boolean"},
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/http.CandidateResponse"}}
            }
        },
        "http.ElectionSheetResponse": {
            "type": "object",
            "properties": {
                "election": {"$ref": "#/definitions/http.ElectionResponse"},
                "ballots": {"type": "array", "items": {"$ref": "#/definitions/http.BallotResponse"}}
            }
        },
        "http.EligibilityResponse": {
            "type": "object",
            "properties": {"election_id": {"type": "string"}, "voter_id": {"type": "string"}, "voting_open": {"type": "boolean"}}
        },
        "http.BiographiesResponse": {
            "type": "object",
            "properties": {
                "election": {"$ref": "#/definitions/http.ElectionResponse"},
                "ballots": {"type": "array", "items": {"$ref": "#/definitions/http.BallotResponse"}}
            }
        },
        "http.CandidateScoreItem": {
            "type": "object",
            "properties": {
                "candidate_id": {"type": "string"},
                "display_name": {"type": "string"},
                "write_in": {"type": "boolean"},
                "score": {"type": "integer"},
                "rank": {"type": "integer"}
            }
        },
        "http.BallotStatsResponse": {
            "type": "object",
            "properties": {
                "ballot_id": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.CandidateScoreItem"}}
            }
        },
        "http.ElectionStatsResponse": {
            "type": "object",
            "properties": {
                "election_id": {"type": "string"},
                "name": {"type": "string"},
                "ballots": {"type": "array", "items": {"$ref": "#/definitions/http.BallotStatsResponse"}}
            }
        },
        "http.ReportRow": {
            "type": "object",
            "properties": {
                "vote_id": {"type": "string"},
                "voter_id": {"type": "string"},
                "points": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "http.ElectionReportResponse": {
            "type": "object",
            "properties": {
                "election_id": {"type": "string"},
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/http.CandidateResponse"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/http.ReportRow"}}
            }
        },
        "http.VoteDetailBallot": {
            "type": "object",
            "properties": {
                "ballot_id": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "choices": {"type": "array", "items": {"$ref": "#/definitions/http.CandidateScoreItem"}}
            }
        },
        "http.VoteDetailsResponse": {
            "type": "object",
            "properties": {
                "vote_id": {"type": "string"},
                "election_id": {"type": "string"},
                "voter_id": {"type": "string"},
                "ballots": {"type": "array", "items": {"$ref": "#/definitions/http.VoteDetailBallot"}}
            }
        },
        "http.CreateElectionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "introduction": {"type": "string"},
                "vote_start": {"type": "string", "example": "2026-10-19"},
                "vote_end": {"type": "string", "example": "2026-10-21"},
                "allowed_voters": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.AddBallotRequest": {
            "type": "object",
            "properties": {
                "position_number": {"type": "integer"},
                "description": {"type": "string"},
                "introduction": {"type": "string"},
                "type": {"type": "string", "enum": ["Pl", "Pr"]},
                "seats_available": {"type": "integer"},
                "is_secret": {"type": "boolean"},
                "write_in_available": {"type": "boolean"}
            }
        },
        "http.AddCandidateRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "institution": {"type": "string"},
                "incumbent": {"type": "boolean"},
                "image_url": {"type": "string"},
                "biography": {"type": "string"}
            }
        },
        "http.SetAllowedVotersRequest": {
            "type": "object",
            "properties": {"voter_ids": {"type": "array", "items": {"type": "string"}}}
        },
        "http.DisassociateResponse": {
            "type": "object",
            "properties": {"election_id": {"type": "string"}, "affected": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Election Service API",
	Description:      "Elections, ballots, vote submission and tallies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
