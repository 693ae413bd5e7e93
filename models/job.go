package models

import (
	"encoding/json"
	"time"
)

// FlexibleStringSlice can unmarshal from either a string or []string.
// LLM extraction payloads are inconsistent about list-valued fields.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as []string first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// If both fail, return empty slice
	*f = []string{}
	return nil
}

// JobStatus values stored on job records
const (
	JobStatusActive     = "active"
	JobStatusProcessing = "processing"
	JobStatusClosed     = "closed"
)

// LocationAny on a job means the role is open to every location
const LocationAny = "any"

// Job represents a stored job requirement extracted from a job description
// @Description Job requirement with must-have/optional skills and experience floor
type Job struct {
	ID                  string              `json:"id" firestore:"-" example:"job_01HXYZ"`
	Title               string              `json:"title" firestore:"title" example:"Senior Backend Engineer"`
	Company             string              `json:"company" firestore:"company" example:"Acme Corp"`
	Location            string              `json:"location" firestore:"location" example:"Bangalore"`
	ExperienceRequired  string              `json:"experience_required" firestore:"experienceRequired" example:"2+ years"`
	MinExperienceMonths *int                `json:"min_experience_months,omitempty" firestore:"minExperienceMonths,omitempty" example:"24"`
	Salary              string              `json:"salary,omitempty" firestore:"salary,omitempty"`
	JobType             string              `json:"job_type,omitempty" firestore:"jobType,omitempty" example:"full_time"`
	Description         string              `json:"description" firestore:"description"`
	Status              string              `json:"status" firestore:"status" example:"active"`
	MustHaveSkills      []string            `json:"skills" firestore:"mustHaveSkills"`
	OptionalSkills      []string            `json:"optional_skills,omitempty" firestore:"optionalSkills,omitempty"`
	EducationRequired   string              `json:"education_required,omitempty" firestore:"educationRequired,omitempty"`
	Responsibilities    FlexibleStringSlice `json:"responsibilities,omitempty" firestore:"responsibilities,omitempty"`
	Benefits            FlexibleStringSlice `json:"benefits,omitempty" firestore:"benefits,omitempty"`
	CreatedAt           time.Time           `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time           `json:"updated_at,omitempty" firestore:"updatedAt"`
}

// JobCreate is the JSON payload for creating a job without a document upload
// @Description Job creation request
type JobCreate struct {
	Title               string              `json:"title" binding:"required" example:"Senior Backend Engineer"`
	Company             string              `json:"company" binding:"required" example:"Acme Corp"`
	Location            string              `json:"location" binding:"required" example:"Bangalore"`
	ExperienceRequired  string              `json:"experience_required" example:"2+ years"`
	MinExperienceMonths *int                `json:"min_experience_months,omitempty" example:"24"`
	Description         string              `json:"description" binding:"required"`
	MustHaveSkills      []string            `json:"skills" binding:"required"`
	OptionalSkills      []string            `json:"optional_skills,omitempty"`
	JobType             string              `json:"job_type,omitempty"`
	Salary              string              `json:"salary,omitempty"`
	EducationRequired   string              `json:"education_required,omitempty"`
	Responsibilities    FlexibleStringSlice `json:"responsibilities,omitempty"`
	Benefits            FlexibleStringSlice `json:"benefits,omitempty"`
}

// JobListResponse is the paginated job list payload
// @Description Paginated list of jobs
type JobListResponse struct {
	Jobs     []Job `json:"jobs"`
	Total    int   `json:"total" example:"17"`
	Page     int   `json:"page" example:"1"`
	PageSize int   `json:"page_size" example:"100"`
}

// JobUploadData carries the identifiers of a freshly ingested job
type JobUploadData struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
	ProcessingTime float64  `json:"processing_time"`
}

// JobUploadResponse is returned after a job description upload
// @Description Job description upload result
type JobUploadResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    JobUploadData `json:"data"`
}
