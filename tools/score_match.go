package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentgraph/backend/matching"
	"github.com/talentgraph/backend/recommend"
)

// ScoreMatchTool scores one stored candidate against one stored job
type ScoreMatchTool struct {
	store recommend.Store
}

// NewScoreMatchTool creates a new score match tool
func NewScoreMatchTool(store recommend.Store) *ScoreMatchTool {
	return &ScoreMatchTool{store: store}
}

// ScoreMatchInput is the input for the score_match tool
type ScoreMatchInput struct {
	JobID                string `json:"job_id"`
	CandidateID          string `json:"candidate_id"`
	IncludeLocationScore *bool  `json:"include_location_score,omitempty"`
}

func (t *ScoreMatchTool) Name() string {
	return "score_match"
}

func (t *ScoreMatchTool) Description() string {
	return "Compute the composite match score between one stored job and one stored candidate, with the full per-factor breakdown"
}

func (t *ScoreMatchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the stored job",
			},
			"candidate_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the stored candidate",
			},
			"include_location_score": map[string]interface{}{
				"type":        "boolean",
				"description": "Include the location factor (default true)",
			},
		},
		"required": []string{"job_id", "candidate_id"},
	}
}

func (t *ScoreMatchTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ScoreMatchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	job, err := t.store.GetJob(ctx, in.JobID)
	if err != nil {
		return NewErrorResult(err.Error())
	}
	cand, err := t.store.GetCandidate(ctx, in.CandidateID)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	opts := matching.Options{IncludeLocationScore: true}
	if in.IncludeLocationScore != nil {
		opts.IncludeLocationScore = *in.IncludeLocationScore
	}

	result, err := matching.Score(job, cand, opts)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	return NewSuccessResult(result)
}
