package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentgraph/backend/recommend"
)

// ExtractJobTool turns raw job description text into a structured requirement
type ExtractJobTool struct {
	extractor recommend.RequirementExtractor
}

// NewExtractJobTool creates a new extract job tool
func NewExtractJobTool(extractor recommend.RequirementExtractor) *ExtractJobTool {
	return &ExtractJobTool{extractor: extractor}
}

// ExtractJobInput is the input for the extract_job tool
type ExtractJobInput struct {
	JobDescriptionText string `json:"job_description_text"`
}

func (t *ExtractJobTool) Name() string {
	return "extract_job"
}

func (t *ExtractJobTool) Description() string {
	return "Extract a structured job requirement (skills, experience floor, location) from raw job description text"
}

func (t *ExtractJobTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"job_description_text": map[string]interface{}{
				"type":        "string",
				"description": "Raw job description text",
			},
		},
		"required": []string{"job_description_text"},
	}
}

func (t *ExtractJobTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ExtractJobInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if in.JobDescriptionText == "" {
		return NewErrorResult("job_description_text is required")
	}

	job, err := t.extractor.ExtractJob(ctx, in.JobDescriptionText)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	return NewSuccessResult(job)
}
