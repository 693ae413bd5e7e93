package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"top_k must be positive"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2025-01-15T10:30:00Z"`
}

// JDTextMatchRequest ranks stored candidates against raw job description text
// @Description Candidates-by-JD-text request
type JDTextMatchRequest struct {
	JobDescriptionText string `json:"job_description_text" binding:"required"`
	Model              string `json:"model,omitempty" example:"gemini-2.5-flash"`
	TopK               int    `json:"top_k,omitempty" example:"10"`
	// Pointer so an explicit 0 (keep everything) is distinguishable from an
	// omitted field (use the configured default).
	MinScore             *float64 `json:"min_score,omitempty" example:"0.3"`
	IncludeLocationScore *bool    `json:"include_location_score,omitempty" example:"true"`
}

// CandidateS3Record points at a resume stored in an external bucket
type CandidateS3Record struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	ResumeLink  string `json:"resume_link" binding:"required,url"`
}

// BulkIngestRequest submits a batch of externally hosted resumes
// @Description Bulk candidate ingestion request
type BulkIngestRequest struct {
	Candidates []CandidateS3Record `json:"candidates" binding:"required"`
	Model      string              `json:"model,omitempty"`
}

// IngestResult reports the outcome for one record of a bulk ingestion
type IngestResult struct {
	CandidateID       string `json:"candidate_id"`
	Status            string `json:"status" example:"success"` // success or failed
	Message           string `json:"message"`
	StoredCandidateID string `json:"stored_candidate_id,omitempty"`
	Error             string `json:"error,omitempty"`
}

// BulkIngestResponse summarizes a bulk ingestion run
// @Description Bulk candidate ingestion result
type BulkIngestResponse struct {
	TotalSubmitted        int            `json:"total_submitted"`
	Successful            int            `json:"successful"`
	Failed                int            `json:"failed"`
	Results               []IngestResult `json:"results"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
}

// ChatRequest is a knowledge-graph question scoped to a session
// @Description Knowledge-graph chat request
type ChatRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id,omitempty" example:"default_session"`
	Model     string `json:"model,omitempty"`
	Mode      string `json:"mode,omitempty" example:"hybrid"` // vector, graph, hybrid, fulltext, entity
	TopK      int    `json:"top_k,omitempty" example:"5"`
}

// ChatResponse carries the answer plus retrieval metadata
// @Description Knowledge-graph chat answer
type ChatResponse struct {
	SessionID    string   `json:"session_id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Sources      []string `json:"sources"`
	Context      string   `json:"context,omitempty"`
	Mode         string   `json:"mode"`
	Model        string   `json:"model"`
	ResponseTime float64  `json:"response_time,omitempty"`
}

// ClearChatHistoryRequest clears one chat session
type ClearChatHistoryRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ClearChatHistoryResponse confirms session history removal
type ClearChatHistoryResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
}

// DeleteResponse confirms a delete operation
// @Description Delete confirmation
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
