package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/models"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func testRecommendationHandler() *RecommendationHandler {
	return NewRecommendationHandler(nil, &config.Config{
		DefaultTopK:     10,
		DefaultMinScore: 0.3,
	})
}

func TestJDTextParamsDefaults(t *testing.T) {
	h := testRecommendationHandler()

	params := h.jdTextParams(models.JDTextMatchRequest{JobDescriptionText: "jd"})

	assert.Equal(t, 10, params.TopK)
	assert.Equal(t, 0.3, params.MinScore)
	assert.True(t, params.IncludeLocationScore)
}

func TestJDTextParamsExplicitValues(t *testing.T) {
	h := testRecommendationHandler()

	params := h.jdTextParams(models.JDTextMatchRequest{
		JobDescriptionText:   "jd",
		TopK:                 5,
		MinScore:             floatPtr(0.7),
		IncludeLocationScore: boolPtr(false),
	})

	assert.Equal(t, 5, params.TopK)
	assert.Equal(t, 0.7, params.MinScore)
	assert.False(t, params.IncludeLocationScore)
}

func TestJDTextParamsExplicitZeroMinScore(t *testing.T) {
	h := testRecommendationHandler()

	// An explicit zero keeps every result; it must not be mistaken for an
	// omitted field and raised to the configured default.
	params := h.jdTextParams(models.JDTextMatchRequest{
		JobDescriptionText: "jd",
		MinScore:           floatPtr(0),
	})

	assert.Equal(t, 0.0, params.MinScore)
}
