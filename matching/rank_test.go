package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/backend/models"
)

func rankJob() *models.Job {
	return &models.Job{
		ID:                  "job-1",
		Title:               "Backend Engineer",
		Location:            "Bangalore",
		MinExperienceMonths: intPtr(24),
		MustHaveSkills:      []string{"go", "postgres"},
	}
}

// candidateWithSkills builds a Bangalore candidate matching the given number
// of the job's two required skills.
func candidateWithSkills(id string, matched int) *models.Candidate {
	skills := []string{"go", "postgres"}[:matched]
	return &models.Candidate{
		ID:               id,
		Location:         "Bangalore",
		ExperienceMonths: 36,
		Skills:           skills,
	}
}

func TestRankCandidatesOrdering(t *testing.T) {
	candidates := []*models.Candidate{
		candidateWithSkills("cand-a", 0),
		candidateWithSkills("cand-b", 2),
		candidateWithSkills("cand-c", 1),
	}

	matches, err := RankCandidates(rankJob(), candidates, 10, 0, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "cand-b", matches[0].Candidate.ID)
	assert.Equal(t, "cand-c", matches[1].Candidate.ID)
	assert.Equal(t, "cand-a", matches[2].Candidate.ID)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Result.OverallScore, matches[i].Result.OverallScore)
	}
}

func TestRankCandidatesTieBreakByID(t *testing.T) {
	candidates := []*models.Candidate{
		candidateWithSkills("cand-z", 1),
		candidateWithSkills("cand-a", 1),
		candidateWithSkills("cand-m", 1),
	}

	matches, err := RankCandidates(rankJob(), candidates, 10, 0, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "cand-a", matches[0].Candidate.ID)
	assert.Equal(t, "cand-m", matches[1].Candidate.ID)
	assert.Equal(t, "cand-z", matches[2].Candidate.ID)
}

func TestRankCandidatesMinScoreFilter(t *testing.T) {
	candidates := []*models.Candidate{
		candidateWithSkills("cand-a", 0), // 0.5 with base and location
		candidateWithSkills("cand-b", 2), // 1.0
	}

	matches, err := RankCandidates(rankJob(), candidates, 10, 0.9, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cand-b", matches[0].Candidate.ID)

	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Result.OverallScore, 0.9)
	}
}

func TestRankCandidatesTopKTruncation(t *testing.T) {
	candidates := make([]*models.Candidate, 0, 20)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, candidateWithSkills(fmt.Sprintf("cand-%02d", i), i%3))
	}

	matches, err := RankCandidates(rankJob(), candidates, 7, 0, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.Len(t, matches, 7)
}

func TestRankCandidatesInvalidParams(t *testing.T) {
	candidates := []*models.Candidate{candidateWithSkills("cand-a", 1)}

	_, err := RankCandidates(rankJob(), candidates, 0, 0.5, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RankCandidates(rankJob(), candidates, -3, 0.5, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RankCandidates(rankJob(), candidates, 5, -0.1, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RankCandidates(rankJob(), candidates, 5, 1.5, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankCandidatesFailsWholeBatchOnInvalidRecord(t *testing.T) {
	candidates := []*models.Candidate{
		candidateWithSkills("cand-a", 2),
		{ID: "cand-bad", ExperienceMonths: -1},
		candidateWithSkills("cand-c", 1),
	}

	matches, err := RankCandidates(rankJob(), candidates, 10, 0, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, matches)
}

func TestRankCandidatesEmptyInput(t *testing.T) {
	matches, err := RankCandidates(rankJob(), nil, 5, 0.3, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRankJobsSymmetric(t *testing.T) {
	cand := &models.Candidate{
		ID:               "cand-1",
		Location:         "Bangalore",
		ExperienceMonths: 36,
		Skills:           []string{"go", "postgres"},
	}
	jobs := []*models.Job{
		{ID: "job-z", Location: "Bangalore", MustHaveSkills: []string{"go"}},
		{ID: "job-a", Location: "Bangalore", MustHaveSkills: []string{"go"}},
		{ID: "job-m", Location: "Mumbai", MustHaveSkills: []string{"cobol", "fortran"}},
	}

	matches, err := RankJobs(cand, jobs, 2, 0, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Equal scores resolve by job id ascending, then topK truncates.
	assert.Equal(t, "job-a", matches[0].Job.ID)
	assert.Equal(t, "job-z", matches[1].Job.ID)
}

func TestRankJobsInvalidParams(t *testing.T) {
	cand := candidateWithSkills("cand-1", 1)

	_, err := RankJobs(cand, nil, 0, 0.3, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = RankJobs(cand, nil, 5, 2, Options{IncludeLocationScore: true})
	require.ErrorIs(t, err, ErrInvalidInput)
}
