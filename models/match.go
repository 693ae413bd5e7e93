package models

// MatchResult is the full score breakdown for one (job, candidate) pair.
// All score fields are fractions of 1.0; presentation layers convert to
// percentages. Field names are part of the wire contract with the front end.
// @Description Composite match score with per-factor breakdown
type MatchResult struct {
	OverallScore    float64 `json:"overall_score" example:"0.8335"`
	MatchPercentage string  `json:"match_percentage" example:"83%"`

	// Skill matching
	SkillMatchScore       float64  `json:"skill_match_score" example:"0.667"`
	SkillMatchCount       string   `json:"skill_match_count" example:"2/3"`
	MatchedMustHaveSkills []string `json:"matched_must_have_skills"`
	MatchedOptionalSkills []string `json:"matched_optional_skills"`
	MissingSkills         []string `json:"missing_skills"`
	AdditionalSkills      []string `json:"additional_skills"`

	// Experience matching
	ExperienceMatch      bool    `json:"experience_match" example:"true"`
	ExperienceMatchScore float64 `json:"experience_match_score" example:"1.0"`
	ExperienceGap        string  `json:"experience_gap,omitempty" example:"6 more months required"`

	// Location matching
	LocationMatch      bool    `json:"location_match" example:"true"`
	LocationMatchScore float64 `json:"location_match_score" example:"1.0"`

	// Knowledge-graph relationship scores
	CompanyNetworkScore     float64 `json:"company_network_score"`
	InstitutionNetworkScore float64 `json:"institution_network_score"`
	IndustryClusterScore    float64 `json:"industry_cluster_score"`
	LocalNetworkScore       float64 `json:"local_network_score"`
	RoleProgressionScore    float64 `json:"role_progression_score"`
	KGRelationshipBonus     float64 `json:"kg_relationship_bonus"`

	BaseScore float64 `json:"base_score" example:"0.05"`
}

// CandidateRecommendation is a candidate ranked against a job
// @Description Ranked candidate with match breakdown
type CandidateRecommendation struct {
	CandidateID     string `json:"candidate_id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	CurrentRole     string `json:"current_role,omitempty"`
	Location        string `json:"location"`
	TotalExperience string `json:"total_experience"`

	MatchResult

	// Free-text explanations produced by the external KG pipeline, never by
	// the scorer. Passed through when present on the stored record.
	Reasons     []string `json:"reasons,omitempty"`
	KGReasoning []string `json:"kg_reasoning,omitempty"`
}

// JobRecommendation is a job ranked against a candidate
// @Description Ranked job with match breakdown
type JobRecommendation struct {
	JobID              string `json:"job_id"`
	Title              string `json:"title"`
	Company            string `json:"company"`
	Location           string `json:"location"`
	ExperienceRequired string `json:"experience_required"`
	Salary             string `json:"salary,omitempty"`
	JobType            string `json:"job_type,omitempty"`
	Description        string `json:"description,omitempty"`

	MatchResult
}

// CandidateRecommendationResponse ranks candidates for one job
// @Description Candidate recommendations for a job
type CandidateRecommendationResponse struct {
	JobID                string                    `json:"job_id"`
	JobTitle             string                    `json:"job_title"`
	TotalRecommendations int                       `json:"total_recommendations"`
	Recommendations      []CandidateRecommendation `json:"recommendations"`
	AvgMatchScore        float64                   `json:"avg_match_score"`
	TopMatchedSkills     []string                  `json:"top_matched_skills"`
}

// JobRecommendationResponse ranks jobs for one candidate
// @Description Job recommendations for a candidate
type JobRecommendationResponse struct {
	CandidateID          string              `json:"candidate_id"`
	CandidateName        string              `json:"candidate_name"`
	TotalRecommendations int                 `json:"total_recommendations"`
	Recommendations      []JobRecommendation `json:"recommendations"`
	AvgMatchScore        float64             `json:"avg_match_score"`
	TopMatchedSkills     []string            `json:"top_matched_skills"`
	CommonMissingSkills  []string            `json:"common_missing_skills"`
}

// SkillCount pairs a skill with its occurrence count in aggregate stats
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// LocationCount pairs a location with its occurrence count in aggregate stats
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// RecommendationStats is the aggregate view over the stored corpus
// @Description Corpus-wide statistics
type RecommendationStats struct {
	TotalJobs             int             `json:"total_jobs"`
	TotalCandidates       int             `json:"total_candidates"`
	TotalSkills           int             `json:"total_skills"`
	AvgSkillsPerJob       float64         `json:"avg_skills_per_job"`
	AvgSkillsPerCandidate float64         `json:"avg_skills_per_candidate"`
	TopDemandedSkills     []SkillCount    `json:"top_demanded_skills"`
	TopLocations          []LocationCount `json:"top_locations"`
}
