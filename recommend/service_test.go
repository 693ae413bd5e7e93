package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/backend/matching"
	"github.com/talentgraph/backend/models"
)

type fakeStore struct {
	jobs       map[string]*models.Job
	candidates map[string]*models.Candidate
}

func (f *fakeStore) GetJob(_ context.Context, id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return job, nil
}

func (f *fakeStore) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	cand, ok := f.candidates[id]
	if !ok {
		return nil, errors.New("candidate not found")
	}
	return cand, nil
}

func (f *fakeStore) ListAllCandidates(_ context.Context) ([]*models.Candidate, error) {
	out := make([]*models.Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) ListAllJobs(_ context.Context) ([]*models.Job, error) {
	out := make([]*models.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

type fakeExtractor struct {
	job *models.Job
	err error
}

func (f *fakeExtractor) ExtractJob(_ context.Context, _ string) (*models.Job, error) {
	return f.job, f.err
}

func intPtr(v int) *int { return &v }

func testStore() *fakeStore {
	return &fakeStore{
		jobs: map[string]*models.Job{
			"job-1": {
				ID:                  "job-1",
				Title:               "Backend Engineer",
				Company:             "Acme",
				Location:            "Bangalore",
				MinExperienceMonths: intPtr(24),
				MustHaveSkills:      []string{"go", "postgres"},
				OptionalSkills:      []string{"kubernetes"},
			},
		},
		candidates: map[string]*models.Candidate{
			"cand-strong": {
				ID:               "cand-strong",
				Name:             "Asha",
				Location:         "Bangalore",
				TotalExperience:  "3 years",
				ExperienceMonths: 36,
				Skills:           []string{"go", "postgres", "kubernetes"},
			},
			"cand-weak": {
				ID:               "cand-weak",
				Name:             "Vikram",
				Location:         "Mumbai",
				TotalExperience:  "1 year",
				ExperienceMonths: 12,
				Skills:           []string{"java"},
			},
		},
	}
}

func TestCandidatesForJob(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{})

	resp, err := svc.CandidatesForJob(context.Background(), "job-1", RankParams{
		TopK:                 10,
		MinScore:             0.5,
		IncludeLocationScore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "job-1", resp.JobID)
	assert.Equal(t, "Backend Engineer", resp.JobTitle)
	require.Equal(t, 1, resp.TotalRecommendations)

	rec := resp.Recommendations[0]
	assert.Equal(t, "cand-strong", rec.CandidateID)
	assert.Equal(t, "Asha", rec.Name)
	assert.Equal(t, "3/3", rec.SkillMatchCount)
	assert.Equal(t, "100%", rec.MatchPercentage)
	assert.Equal(t, 1.0, resp.AvgMatchScore)
	assert.ElementsMatch(t, []string{"go", "postgres"}, rec.MatchedMustHaveSkills)
	assert.ElementsMatch(t, []string{"kubernetes"}, rec.MatchedOptionalSkills)
	assert.Contains(t, resp.TopMatchedSkills, "go")
}

func TestCandidatesForJobUnknownJob(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{})

	_, err := svc.CandidatesForJob(context.Background(), "job-missing", RankParams{TopK: 5, MinScore: 0, IncludeLocationScore: true})
	require.Error(t, err)
}

func TestCandidatesForJobInvalidParams(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{})

	_, err := svc.CandidatesForJob(context.Background(), "job-1", RankParams{TopK: 0, MinScore: 0.3, IncludeLocationScore: true})
	require.ErrorIs(t, err, matching.ErrInvalidInput)
}

func TestCandidatesForJDText(t *testing.T) {
	extractor := &fakeExtractor{job: &models.Job{
		Title:          "Platform Engineer",
		Location:       "any",
		MustHaveSkills: []string{"go"},
	}}
	svc := NewService(testStore(), extractor)

	resp, err := svc.CandidatesForJDText(context.Background(), "we need a platform engineer", RankParams{
		TopK:                 5,
		MinScore:             0.3,
		IncludeLocationScore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "jd-text", resp.JobID)
	assert.Equal(t, "Platform Engineer", resp.JobTitle)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "cand-strong", resp.Recommendations[0].CandidateID)
}

func TestCandidatesForJDTextExtractionFailure(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{err: errors.New("model unavailable")})

	_, err := svc.CandidatesForJDText(context.Background(), "gibberish", RankParams{TopK: 5, MinScore: 0.3, IncludeLocationScore: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}

func TestJobsForCandidate(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{})

	resp, err := svc.JobsForCandidate(context.Background(), "cand-weak", RankParams{
		TopK:                 5,
		MinScore:             0,
		IncludeLocationScore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "cand-weak", resp.CandidateID)
	assert.Equal(t, "Vikram", resp.CandidateName)
	require.Equal(t, 1, resp.TotalRecommendations)
	assert.Equal(t, "job-1", resp.Recommendations[0].JobID)
	// Everything required is missing for this candidate.
	assert.Contains(t, resp.CommonMissingSkills, "go")
}

func TestStats(t *testing.T) {
	svc := NewService(testStore(), &fakeExtractor{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalJobs)
	assert.Equal(t, 2, stats.TotalCandidates)
	// go, postgres, kubernetes, java
	assert.Equal(t, 4, stats.TotalSkills)
	assert.Equal(t, 3.0, stats.AvgSkillsPerJob)
	assert.Equal(t, 2.0, stats.AvgSkillsPerCandidate)
	require.NotEmpty(t, stats.TopDemandedSkills)
	assert.Equal(t, 1, stats.TopDemandedSkills[0].Count)
}
