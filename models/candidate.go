package models

import "time"

// CandidateStatus values stored on candidate records
const (
	CandidateStatusActive     = "active"
	CandidateStatusProcessing = "processing"
	CandidateStatusArchived   = "archived"
)

// Candidate represents a stored candidate profile extracted from a resume
// @Description Candidate profile with skills, experience and knowledge-graph signals
type Candidate struct {
	ID               string   `json:"id" firestore:"-" example:"cand_01HXYZ"`
	Name             string   `json:"name" firestore:"name" example:"Priya Sharma"`
	Email            string   `json:"email,omitempty" firestore:"email,omitempty" example:"priya@example.com"`
	Phone            string   `json:"phone,omitempty" firestore:"phone,omitempty"`
	Location         string   `json:"location" firestore:"location" example:"Bangalore"`
	CurrentRole      string   `json:"current_role,omitempty" firestore:"currentRole,omitempty" example:"Backend Engineer"`
	TotalExperience  string   `json:"total_experience" firestore:"totalExperience" example:"4 years 2 months"`
	ExperienceMonths int      `json:"experience_months" firestore:"experienceMonths" example:"50"`
	Summary          string   `json:"summary,omitempty" firestore:"summary,omitempty"`
	Status           string   `json:"status" firestore:"status" example:"active"`
	Skills           []string `json:"skills" firestore:"skills"`

	Experience     []WorkExperience `json:"experience,omitempty" firestore:"experience,omitempty"`
	Education      []Education      `json:"education,omitempty" firestore:"education,omitempty"`
	Certifications []string         `json:"certifications,omitempty" firestore:"certifications,omitempty"`
	Languages      []string         `json:"languages,omitempty" firestore:"languages,omitempty"`

	// Relationship signals computed by the external knowledge-graph pipeline.
	// Absent signals are treated as zero by the match scorer.
	KGSignals KGSignals `json:"kg_signals,omitempty" firestore:"kgSignals,omitempty"`

	ResumeURL string    `json:"resume_url,omitempty" firestore:"resumeUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at,omitempty" firestore:"updatedAt"`
}

// WorkExperience represents one entry of a candidate's work history
type WorkExperience struct {
	Company     string `json:"company" firestore:"company"`
	Role        string `json:"role" firestore:"role"`
	Duration    string `json:"duration,omitempty" firestore:"duration,omitempty"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty" firestore:"startDate,omitempty"`
	EndDate     string `json:"end_date,omitempty" firestore:"endDate,omitempty"`
}

// Education represents one entry of a candidate's educational background
type Education struct {
	Degree       string `json:"degree" firestore:"degree"`
	Institution  string `json:"institution" firestore:"institution"`
	Year         string `json:"year,omitempty" firestore:"year,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty" firestore:"fieldOfStudy,omitempty"`
}

// KGSignals holds the optional knowledge-graph relationship sub-scores for a
// candidate. Each signal is a fraction of 1.0; a nil pointer means the graph
// pipeline produced no signal, which the scorer treats as zero.
type KGSignals struct {
	CompanyNetwork     *float64 `json:"company_network_score,omitempty" firestore:"companyNetwork,omitempty"`
	InstitutionNetwork *float64 `json:"institution_network_score,omitempty" firestore:"institutionNetwork,omitempty"`
	IndustryCluster    *float64 `json:"industry_cluster_score,omitempty" firestore:"industryCluster,omitempty"`
	LocalNetwork       *float64 `json:"local_network_score,omitempty" firestore:"localNetwork,omitempty"`
	RoleProgression    *float64 `json:"role_progression_score,omitempty" firestore:"roleProgression,omitempty"`
}

// CandidateListResponse is the paginated candidate list payload
// @Description Paginated list of candidates
type CandidateListResponse struct {
	Candidates []Candidate `json:"candidates"`
	Total      int         `json:"total" example:"42"`
	Page       int         `json:"page" example:"1"`
	PageSize   int         `json:"page_size" example:"100"`
}

// CandidateUploadData carries the identifiers of a freshly ingested candidate
type CandidateUploadData struct {
	CandidateID    string   `json:"candidate_id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
	ProcessingTime float64  `json:"processing_time"`
}

// CandidateUploadResponse is returned after a single resume upload
// @Description Resume upload result
type CandidateUploadResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    CandidateUploadData `json:"data"`
}
