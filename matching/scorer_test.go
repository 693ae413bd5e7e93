package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/backend/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func bangaloreJob() *models.Job {
	return &models.Job{
		ID:                  "job-1",
		Title:               "Backend Engineer",
		Location:            "Bangalore",
		MinExperienceMonths: intPtr(24),
		MustHaveSkills:      []string{"python", "react"},
		OptionalSkills:      []string{"aws"},
	}
}

func bangaloreCandidate() *models.Candidate {
	return &models.Candidate{
		ID:               "cand-1",
		Name:             "Priya",
		Location:         "Bangalore",
		ExperienceMonths: 30,
		Skills:           []string{"python", "aws", "docker"},
	}
}

func TestScoreWorkedExample(t *testing.T) {
	result, err := Score(bangaloreJob(), bangaloreCandidate(), Options{IncludeLocationScore: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"python"}, result.MatchedMustHaveSkills)
	assert.Equal(t, []string{"aws"}, result.MatchedOptionalSkills)
	assert.Equal(t, []string{"react"}, result.MissingSkills)
	assert.Equal(t, []string{"docker"}, result.AdditionalSkills)
	assert.Equal(t, "2/3", result.SkillMatchCount)
	assert.InDelta(t, 2.0/3.0, result.SkillMatchScore, 1e-9)

	assert.True(t, result.ExperienceMatch)
	assert.Equal(t, 1.0, result.ExperienceMatchScore)
	assert.Empty(t, result.ExperienceGap)

	assert.True(t, result.LocationMatch)
	assert.Equal(t, 1.0, result.LocationMatchScore)

	assert.Zero(t, result.KGRelationshipBonus)
	assert.Equal(t, 0.05, result.BaseScore)

	expected := 0.50*(2.0/3.0) + 0.30 + 0.15 + 0.05
	assert.InDelta(t, expected, result.OverallScore, 1e-9)
	assert.Equal(t, "83%", result.MatchPercentage)
}

func TestScoreWorkedExampleLocationDisabled(t *testing.T) {
	cand := bangaloreCandidate()
	cand.Location = "Mumbai"

	result, err := Score(bangaloreJob(), cand, Options{IncludeLocationScore: false})
	require.NoError(t, err)

	expected := 0.60*(2.0/3.0) + 0.35 + 0.05
	assert.InDelta(t, expected, result.OverallScore, 1e-9)
	assert.Equal(t, "80%", result.MatchPercentage)
}

func TestScoreNoRequiredSkillsGivesFullSkillCredit(t *testing.T) {
	job := bangaloreJob()
	job.MustHaveSkills = nil
	job.OptionalSkills = nil

	for _, skills := range [][]string{nil, {"cobol"}, {"python", "react"}} {
		cand := bangaloreCandidate()
		cand.Skills = skills

		result, err := Score(job, cand, Options{IncludeLocationScore: true})
		require.NoError(t, err)
		assert.Equal(t, 1.0, result.SkillMatchScore)
		assert.Equal(t, "0/0", result.SkillMatchCount)
	}
}

func TestScoreSkillNormalization(t *testing.T) {
	job := bangaloreJob()
	job.MustHaveSkills = []string{"  Python ", "REACT", "python"} // dup collapses
	job.OptionalSkills = []string{"react"}                        // must-have wins

	cand := bangaloreCandidate()
	cand.Skills = []string{"PYTHON ", "python"}

	result, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Python"}, result.MatchedMustHaveSkills)
	assert.Empty(t, result.MatchedOptionalSkills)
	assert.Equal(t, []string{"REACT"}, result.MissingSkills)
	assert.Equal(t, "1/2", result.SkillMatchCount)
	assert.InDelta(t, 0.5, result.SkillMatchScore, 1e-9)
}

func TestScoreSkillMonotonicity(t *testing.T) {
	job := bangaloreJob()
	cand := bangaloreCandidate()

	before, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)

	cand.Skills = append(cand.Skills, "react")
	after, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, after.SkillMatchScore, before.SkillMatchScore)
	assert.Equal(t, 1.0, after.SkillMatchScore)
}

func TestScoreExperiencePartialCredit(t *testing.T) {
	job := bangaloreJob()
	cand := bangaloreCandidate()
	cand.ExperienceMonths = 18

	result, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)

	assert.False(t, result.ExperienceMatch)
	assert.InDelta(t, 0.75, result.ExperienceMatchScore, 1e-9)
	assert.Less(t, result.ExperienceMatchScore, 1.0)
	assert.Equal(t, "6 more months required", result.ExperienceGap)
}

func TestScoreNoExperienceRequirement(t *testing.T) {
	job := bangaloreJob()
	job.MinExperienceMonths = nil

	cand := bangaloreCandidate()
	cand.ExperienceMonths = 0

	result, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.True(t, result.ExperienceMatch)
	assert.Equal(t, 1.0, result.ExperienceMatchScore)
}

func TestScoreLocationRules(t *testing.T) {
	tests := []struct {
		name      string
		jobLoc    string
		candLoc   string
		wantMatch bool
	}{
		{"exact", "Bangalore", "Bangalore", true},
		{"case insensitive", "bangalore", " BANGALORE ", true},
		{"any", "Any", "Mumbai", true},
		{"empty job location", "", "Mumbai", true},
		{"mismatch", "Bangalore", "Mumbai", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := bangaloreJob()
			job.Location = tt.jobLoc
			cand := bangaloreCandidate()
			cand.Location = tt.candLoc

			result, err := Score(job, cand, Options{IncludeLocationScore: true})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, result.LocationMatch)
			if tt.wantMatch {
				assert.Equal(t, 1.0, result.LocationMatchScore)
			} else {
				// No partial credit on location.
				assert.Zero(t, result.LocationMatchScore)
			}
		})
	}
}

func TestScoreKGBonusCeiling(t *testing.T) {
	cand := bangaloreCandidate()
	cand.KGSignals = models.KGSignals{
		CompanyNetwork:     floatPtr(1.0),
		InstitutionNetwork: floatPtr(1.0),
		IndustryCluster:    floatPtr(0.9),
		LocalNetwork:       floatPtr(0.8),
		RoleProgression:    floatPtr(0.7),
	}

	result, err := Score(bangaloreJob(), cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.Equal(t, KGBonusCeiling, result.KGRelationshipBonus)
	// Overall stays within [0,1] even with the bonus maxed out.
	assert.LessOrEqual(t, result.OverallScore, 1.0)
}

func TestScoreKGSignalClampedAboveOne(t *testing.T) {
	cand := bangaloreCandidate()
	cand.KGSignals = models.KGSignals{CompanyNetwork: floatPtr(1.7)}

	result, err := Score(bangaloreJob(), cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.CompanyNetworkScore)
	// The bonus ceiling applies even when a single clamped signal exceeds it.
	assert.Equal(t, KGBonusCeiling, result.KGRelationshipBonus)
	assert.LessOrEqual(t, result.KGRelationshipBonus, KGBonusCeiling)
}

func TestScoreKGSignalMissingTreatedAsZero(t *testing.T) {
	cand := bangaloreCandidate()
	cand.KGSignals = models.KGSignals{IndustryCluster: floatPtr(0.2)}

	result, err := Score(bangaloreJob(), cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.Zero(t, result.CompanyNetworkScore)
	assert.InDelta(t, 0.2, result.KGRelationshipBonus, 1e-9)
}

func TestScoreInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		job  *models.Job
		cand *models.Candidate
	}{
		{"missing job id", &models.Job{}, bangaloreCandidate()},
		{"missing candidate id", bangaloreJob(), &models.Candidate{}},
		{
			"negative experience",
			bangaloreJob(),
			&models.Candidate{ID: "c", ExperienceMonths: -1},
		},
		{
			"negative min experience",
			&models.Job{ID: "j", MinExperienceMonths: intPtr(-5)},
			bangaloreCandidate(),
		},
		{
			"negative kg signal",
			bangaloreJob(),
			&models.Candidate{ID: "c", KGSignals: models.KGSignals{LocalNetwork: floatPtr(-0.1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.job, tt.cand, Options{IncludeLocationScore: true})
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	job := bangaloreJob()
	cand := bangaloreCandidate()
	cand.KGSignals = models.KGSignals{CompanyNetwork: floatPtr(0.3)}

	first, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	second, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScorePercentageRounding(t *testing.T) {
	// A candidate matching nothing still earns the base score.
	job := bangaloreJob()
	cand := &models.Candidate{ID: "cand-2", Location: "Delhi", ExperienceMonths: 0, Skills: nil}

	result, err := Score(job, cand, Options{IncludeLocationScore: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.05, result.OverallScore, 1e-9)
	assert.Equal(t, "5%", result.MatchPercentage)
}
