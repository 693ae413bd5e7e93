package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/recommend"
)

// RankCandidatesTool ranks stored candidates for a stored job
type RankCandidatesTool struct {
	service *recommend.Service
	cfg     *config.Config
}

// NewRankCandidatesTool creates a new rank candidates tool
func NewRankCandidatesTool(service *recommend.Service, cfg *config.Config) *RankCandidatesTool {
	return &RankCandidatesTool{service: service, cfg: cfg}
}

// RankCandidatesInput is the input for the rank_candidates tool
type RankCandidatesInput struct {
	JobID                string   `json:"job_id"`
	TopK                 int      `json:"top_k,omitempty"`
	MinScore             *float64 `json:"min_score,omitempty"`
	IncludeLocationScore *bool    `json:"include_location_score,omitempty"`
}

func (t *RankCandidatesTool) Name() string {
	return "rank_candidates"
}

func (t *RankCandidatesTool) Description() string {
	return "Rank every stored candidate against a stored job and return the best matches with score breakdowns"
}

func (t *RankCandidatesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the stored job",
			},
			"top_k": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum results to return",
			},
			"min_score": map[string]interface{}{
				"type":        "number",
				"description": "Minimum overall score in [0,1]",
			},
			"include_location_score": map[string]interface{}{
				"type":        "boolean",
				"description": "Include the location factor (default true)",
			},
		},
		"required": []string{"job_id"},
	}
}

func (t *RankCandidatesTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in RankCandidatesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	params := recommend.RankParams{
		TopK:                 in.TopK,
		MinScore:             t.cfg.DefaultMinScore,
		IncludeLocationScore: true,
	}
	if params.TopK == 0 {
		params.TopK = t.cfg.DefaultTopK
	}
	if in.MinScore != nil {
		params.MinScore = *in.MinScore
	}
	if in.IncludeLocationScore != nil {
		params.IncludeLocationScore = *in.IncludeLocationScore
	}

	resp, err := t.service.CandidatesForJob(ctx, in.JobID, params)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	return NewSuccessResult(resp)
}
