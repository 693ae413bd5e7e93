package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentgraph/backend/models"
)

// CandidateExtractor turns raw resume text into a structured profile
type CandidateExtractor interface {
	ExtractCandidate(ctx context.Context, resumeText string) (*models.Candidate, error)
}

// ParseResumeTool extracts a structured candidate profile from resume text
type ParseResumeTool struct {
	extractor CandidateExtractor
}

// NewParseResumeTool creates a new parse resume tool
func NewParseResumeTool(extractor CandidateExtractor) *ParseResumeTool {
	return &ParseResumeTool{extractor: extractor}
}

// ParseResumeInput is the input for the parse_resume tool
type ParseResumeInput struct {
	ResumeText string `json:"resume_text"`
}

func (t *ParseResumeTool) Name() string {
	return "parse_resume"
}

func (t *ParseResumeTool) Description() string {
	return "Extract a structured candidate profile (skills, experience, education) from raw resume text"
}

func (t *ParseResumeTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"resume_text": map[string]interface{}{
				"type":        "string",
				"description": "Raw resume text",
			},
		},
		"required": []string{"resume_text"},
	}
}

func (t *ParseResumeTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ParseResumeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if in.ResumeText == "" {
		return NewErrorResult("resume_text is required")
	}

	cand, err := t.extractor.ExtractCandidate(ctx, in.ResumeText)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	return NewSuccessResult(cand)
}
