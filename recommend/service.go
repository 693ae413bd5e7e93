package recommend

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/talentgraph/backend/matching"
	"github.com/talentgraph/backend/models"
)

// Store is the slice of the storage layer the recommendation flows need.
type Store interface {
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListAllCandidates(ctx context.Context) ([]*models.Candidate, error)
	ListAllJobs(ctx context.Context) ([]*models.Job, error)
}

// RequirementExtractor turns raw job description text into a structured job.
type RequirementExtractor interface {
	ExtractJob(ctx context.Context, jdText string) (*models.Job, error)
}

// topSkillsLimit bounds the aggregate skill lists in responses.
const topSkillsLimit = 5

// adhocJobID identifies transient jobs built from raw JD text. They are
// scored but never stored.
const adhocJobID = "jd-text"

// Service orchestrates ranking flows: load records, score them with the
// match scorer, aggregate the result envelopes the front end renders.
type Service struct {
	store     Store
	extractor RequirementExtractor
}

// NewService creates a recommendation service
func NewService(store Store, extractor RequirementExtractor) *Service {
	return &Service{store: store, extractor: extractor}
}

// RankParams carries caller-supplied ranking knobs
type RankParams struct {
	TopK                 int
	MinScore             float64
	IncludeLocationScore bool
}

// CandidatesForJob ranks every stored candidate against one stored job
func (s *Service) CandidatesForJob(ctx context.Context, jobID string, params RankParams) (*models.CandidateRecommendationResponse, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.ListAllCandidates(ctx)
	if err != nil {
		return nil, err
	}

	return s.rankCandidates(job, candidates, params)
}

// CandidatesForJDText ranks stored candidates against a transient job
// extracted from raw job description text
func (s *Service) CandidatesForJDText(ctx context.Context, jdText string, params RankParams) (*models.CandidateRecommendationResponse, error) {
	job, err := s.extractor.ExtractJob(ctx, jdText)
	if err != nil {
		return nil, fmt.Errorf("job description extraction failed: %w", err)
	}
	job.ID = adhocJobID

	candidates, err := s.store.ListAllCandidates(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("[Recommend] JD text extracted: title=%q, mustHave=%d, optional=%d",
		job.Title, len(job.MustHaveSkills), len(job.OptionalSkills))

	return s.rankCandidates(job, candidates, params)
}

func (s *Service) rankCandidates(job *models.Job, candidates []*models.Candidate, params RankParams) (*models.CandidateRecommendationResponse, error) {
	matches, err := matching.RankCandidates(job, candidates, params.TopK, params.MinScore,
		matching.Options{IncludeLocationScore: params.IncludeLocationScore})
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.CandidateRecommendation, 0, len(matches))
	for _, m := range matches {
		recommendations = append(recommendations, models.CandidateRecommendation{
			CandidateID:     m.Candidate.ID,
			Name:            m.Candidate.Name,
			Email:           m.Candidate.Email,
			Phone:           m.Candidate.Phone,
			CurrentRole:     m.Candidate.CurrentRole,
			Location:        m.Candidate.Location,
			TotalExperience: m.Candidate.TotalExperience,
			MatchResult:     *m.Result,
		})
	}

	results := make([]*models.MatchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.Result)
	}

	log.Printf("[Recommend] Ranked %d/%d candidates for job %s", len(matches), len(candidates), job.ID)

	return &models.CandidateRecommendationResponse{
		JobID:                job.ID,
		JobTitle:             job.Title,
		TotalRecommendations: len(recommendations),
		Recommendations:      recommendations,
		AvgMatchScore:        averageScore(results),
		TopMatchedSkills:     topMatchedSkills(results),
	}, nil
}

// JobsForCandidate ranks every stored job against one stored candidate
func (s *Service) JobsForCandidate(ctx context.Context, candidateID string, params RankParams) (*models.JobRecommendationResponse, error) {
	cand, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.store.ListAllJobs(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := matching.RankJobs(cand, jobs, params.TopK, params.MinScore,
		matching.Options{IncludeLocationScore: params.IncludeLocationScore})
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.JobRecommendation, 0, len(matches))
	results := make([]*models.MatchResult, 0, len(matches))
	for _, m := range matches {
		recommendations = append(recommendations, models.JobRecommendation{
			JobID:              m.Job.ID,
			Title:              m.Job.Title,
			Company:            m.Job.Company,
			Location:           m.Job.Location,
			ExperienceRequired: m.Job.ExperienceRequired,
			Salary:             m.Job.Salary,
			JobType:            m.Job.JobType,
			Description:        m.Job.Description,
			MatchResult:        *m.Result,
		})
		results = append(results, m.Result)
	}

	log.Printf("[Recommend] Ranked %d/%d jobs for candidate %s", len(matches), len(jobs), cand.ID)

	return &models.JobRecommendationResponse{
		CandidateID:          cand.ID,
		CandidateName:        cand.Name,
		TotalRecommendations: len(recommendations),
		Recommendations:      recommendations,
		AvgMatchScore:        averageScore(results),
		TopMatchedSkills:     topMatchedSkills(results),
		CommonMissingSkills:  commonMissingSkills(results),
	}, nil
}

// Stats aggregates corpus-wide counts for the dashboard
func (s *Service) Stats(ctx context.Context) (*models.RecommendationStats, error) {
	candidates, err := s.store.ListAllCandidates(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.store.ListAllJobs(ctx)
	if err != nil {
		return nil, err
	}

	skillSet := make(map[string]bool)
	skillDemand := make(map[string]int)
	locations := make(map[string]int)

	candidateSkills := 0
	for _, cand := range candidates {
		candidateSkills += len(cand.Skills)
		for _, skill := range cand.Skills {
			skillSet[normalizeKey(skill)] = true
		}
		if cand.Location != "" {
			locations[normalizeKey(cand.Location)]++
		}
	}

	jobSkills := 0
	for _, job := range jobs {
		required := append(append([]string{}, job.MustHaveSkills...), job.OptionalSkills...)
		jobSkills += len(required)
		for _, skill := range required {
			key := normalizeKey(skill)
			skillSet[key] = true
			skillDemand[key]++
		}
		if job.Location != "" && normalizeKey(job.Location) != models.LocationAny {
			locations[normalizeKey(job.Location)]++
		}
	}

	stats := &models.RecommendationStats{
		TotalJobs:       len(jobs),
		TotalCandidates: len(candidates),
		TotalSkills:     len(skillSet),
	}
	if len(jobs) > 0 {
		stats.AvgSkillsPerJob = round2(float64(jobSkills) / float64(len(jobs)))
	}
	if len(candidates) > 0 {
		stats.AvgSkillsPerCandidate = round2(float64(candidateSkills) / float64(len(candidates)))
	}

	for _, sc := range topCounts(skillDemand, topSkillsLimit) {
		stats.TopDemandedSkills = append(stats.TopDemandedSkills, models.SkillCount{Skill: sc.key, Count: sc.count})
	}
	for _, lc := range topCounts(locations, topSkillsLimit) {
		stats.TopLocations = append(stats.TopLocations, models.LocationCount{Location: lc.key, Count: lc.count})
	}

	return stats, nil
}

// Aggregation helpers

func averageScore(results []*models.MatchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.OverallScore
	}
	return round2(sum / float64(len(results)))
}

func topMatchedSkills(results []*models.MatchResult) []string {
	counts := make(map[string]int)
	for _, r := range results {
		for _, skill := range r.MatchedMustHaveSkills {
			counts[normalizeKey(skill)]++
		}
		for _, skill := range r.MatchedOptionalSkills {
			counts[normalizeKey(skill)]++
		}
	}
	return keysOfTopCounts(counts, topSkillsLimit)
}

func commonMissingSkills(results []*models.MatchResult) []string {
	counts := make(map[string]int)
	for _, r := range results {
		for _, skill := range r.MissingSkills {
			counts[normalizeKey(skill)]++
		}
	}
	return keysOfTopCounts(counts, topSkillsLimit)
}

type keyCount struct {
	key   string
	count int
}

// topCounts orders counts descending, ties broken alphabetically so the
// aggregates are deterministic.
func topCounts(counts map[string]int, limit int) []keyCount {
	entries := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, keyCount{key: k, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func keysOfTopCounts(counts map[string]int, limit int) []string {
	entries := topCounts(counts, limit)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return keys
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
